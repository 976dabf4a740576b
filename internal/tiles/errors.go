package tiles

import (
	"errors"
	"fmt"
)

// ErrNoVariants is matched by every *NoVariantsError.
var ErrNoVariants = errors.New("no tile variants")

// ErrUnknownConcept is returned when registering against an undeclared concept.
var ErrUnknownConcept = errors.New("unknown tile concept")

// NoVariantsError reports a concept or category with nothing registered.
type NoVariantsError struct {
	Concept  Concept
	Category Category
}

func (e *NoVariantsError) Error() string {
	if e.Concept != "" {
		return fmt.Sprintf("no variants registered for concept %q", e.Concept)
	}
	return fmt.Sprintf("no variants registered for category %q", e.Category)
}

// Is lets errors.Is(err, ErrNoVariants) match.
func (e *NoVariantsError) Is(target error) bool {
	return target == ErrNoVariants
}
