package usecase

import "fmt"

// ErrValidation indicates bad input; no state was mutated.
var ErrValidation = fmt.Errorf("messaging use case: validation error")

// ErrStorage indicates an infrastructure/repository failure inside a use case.
var ErrStorage = fmt.Errorf("messaging use case: persistence error")
