package service

import "errors"

var (
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")

	// ErrModificationForbidden is returned when a user edits a guarded field of
	// a component line whose pack does not allow it.
	ErrModificationForbidden = errors.New("pack component line cannot be modified")

	// ErrChildLineCreation is returned when a caller tries to create a pack
	// component line directly.
	ErrChildLineCreation = errors.New("pack component lines are created by pack expansion only")

	// ErrPackCycle is returned when a pack contains itself through its components.
	ErrPackCycle = errors.New("pack contains itself")

	// ErrProductRequired is returned when a line is created without a product.
	ErrProductRequired = errors.New("product is required")

	ErrLineNotFound      = errors.New("order line not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrPricelistNotFound = errors.New("pricelist not found")
)
