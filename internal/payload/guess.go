package payload

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// seededRand returns a PRNG seeded deterministically from key, so leaf
// values are stable across invocations for the same (key, schema) —
// matching the hashlib.sha256(key)[:8 hex chars] seeding rule.
func seededRand(key string) *rand.Rand {
	sum := sha256.Sum256([]byte(key))
	seedHex := hex.EncodeToString(sum[:])[:8]
	var seed int64
	fmt.Sscanf(seedHex, "%x", &seed)
	return rand.New(rand.NewSource(seed))
}

func seededUUID(key string) string {
	r := seededRand(key)
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return "00000000-0000-4000-8000-000000000000"
	}
	return id.String()
}

var (
	firstNames = []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis"}
	words      = []string{"sample", "value", "widget", "token", "item", "entry", "record", "payload"}
	cities     = []string{"Springfield", "Fairview", "Riverside", "Franklin", "Greenville", "Clinton"}
	countries  = []string{"US", "GB", "DE", "FR", "CA", "JP"}
	streets    = []string{"Main St", "Oak Ave", "Maple Dr", "Elm St", "Cedar Ln"}
	currencies = []string{"USD", "EUR", "GBP", "JPY", "CAD"}
)

func pick[T any](r *rand.Rand, options []T) T {
	return options[r.Intn(len(options))]
}

// guessValue derives a deterministic, field-name-informed leaf value, or
// false if no heuristic applies and the caller should fall back to a
// type-based default.
func guessValue(fieldName string, schema map[string]any) (any, bool) {
	schemaType, _ := schema["type"].(string)
	format, _ := schema["format"].(string)
	name := strings.ToLower(fieldName)
	r := seededRand(fieldName + "|" + schemaType + "|" + format)

	switch schemaType {
	case "string":
		switch {
		case format == "email" || strings.Contains(name, "email"):
			return fmt.Sprintf("%s.%s@example.com", strings.ToLower(pick(r, firstNames)), strings.ToLower(pick(r, lastNames))), true
		case format == "uuid" || format == "uuid4" || strings.Contains(name, "uuid"):
			return seededUUID(fieldName), true
		case strings.Contains(name, "name"):
			switch {
			case strings.Contains(name, "first"):
				return pick(r, firstNames), true
			case strings.Contains(name, "last"):
				return pick(r, lastNames), true
			default:
				return pick(r, firstNames) + " " + pick(r, lastNames), true
			}
		case strings.Contains(name, "phone"):
			return fmt.Sprintf("+1-555-%04d", r.Intn(10000)), true
		case strings.Contains(name, "zip") || strings.Contains(name, "postal"):
			return fmt.Sprintf("%05d", r.Intn(100000)), true
		case strings.Contains(name, "city"):
			return pick(r, cities), true
		case strings.Contains(name, "country"):
			return pick(r, countries), true
		case strings.Contains(name, "address"):
			return fmt.Sprintf("%d %s", r.Intn(9000)+100, pick(r, streets)), true
		case strings.Contains(name, "url") || format == "uri" || format == "url":
			return fmt.Sprintf("https://example.com/%s", pick(r, words)), true
		case strings.Contains(name, "date") || format == "date":
			return "2024-01-15", true
		case strings.Contains(name, "time") || format == "date-time" || format == "datetime":
			return "2024-01-15T09:30:00Z", true
		case strings.Contains(name, "currency"):
			return pick(r, currencies), true
		case strings.HasSuffix(name, "id") || strings.HasSuffix(name, "_id"):
			return seededUUID(fieldName), true
		default:
			return pick(r, words), true
		}

	case "integer":
		switch {
		case strings.Contains(name, "age"):
			return 30, true
		case strings.Contains(name, "count"):
			return 1, true
		case strings.Contains(name, "limit"):
			return 10, true
		case strings.Contains(name, "lives"):
			return 9, true
		case strings.HasSuffix(name, "id") || strings.HasSuffix(name, "_id"):
			return 1, true
		default:
			return 0, true
		}

	case "number":
		for _, hint := range []string{"amount", "price", "total", "cost"} {
			if strings.Contains(name, hint) {
				return 100.0, true
			}
		}
		return 0.0, true

	case "boolean":
		return false, true
	}

	return nil, false
}
