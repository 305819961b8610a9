package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// RunUUID derives the identity for a pipeline run from its target locale and
// the set names it covers. Re-running the same configuration yields the same
// run identity.
func RunUUID(locale string, sets []string) uuid.UUID {
	normalized := make([]string, 0, len(sets))
	for _, set := range sets {
		if trimmed := strings.ToLower(strings.TrimSpace(set)); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return UUID("go-localegen:run:" + strings.ToLower(strings.TrimSpace(locale)) + ":" + strings.Join(normalized, ","))
}

// FileUUID derives the identity for a generated file record.
func FileUUID(set, name string) uuid.UUID {
	return UUID("go-localegen:file:" + strings.ToLower(strings.TrimSpace(set)) + ":" + strings.TrimSpace(name))
}

// LocaleUUID derives the identity for a locale code.
func LocaleUUID(code string) uuid.UUID {
	return UUID("go-localegen:locale:" + strings.ToLower(strings.TrimSpace(code)))
}
