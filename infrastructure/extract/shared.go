// Package extract converts unstructured text into the engine's structured
// records: requirement facts from free-text requirements, filters from chat
// queries, and explanations from validated facts.
//
// Every converter is a two-tier strategy: a primary path backed by the
// reasoning backend and a deterministic fallback that is total over all
// inputs. Backend failures of any kind are absorbed at the call site and
// never reach the caller.
package extract

import "github.com/go-playground/validator/v10"

// Package-level validator instance for schema validation of backend
// responses and loaded vocabularies.
var validate = validator.New()
