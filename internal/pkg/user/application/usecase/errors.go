package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a use case.
var ErrPersistence = fmt.Errorf("user use case: persistence error")

// ErrEmailTaken is returned by signup when the address already has an account.
var ErrEmailTaken = fmt.Errorf("user use case: email already registered")

// ErrInvalidCredentials is returned by login for an unknown email or wrong
// password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = fmt.Errorf("user use case: invalid credentials")
