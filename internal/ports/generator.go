package ports

import "context"

// Generator is the text-generation collaborator. Given a system instruction
// and a user instruction it returns a flat JSON object of natural-language
// fields. Fields may be missing; callers must default-fill. Any transport,
// status or parse failure is returned as an error and treated as recoverable.
type Generator interface {
	Generate(ctx context.Context, system, user string) (map[string]string, error)
}
