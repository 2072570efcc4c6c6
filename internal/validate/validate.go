// Package validate implements the input validation and sanitization layer.
// Every mutating endpoint funnels untrusted payload fields through these
// validators before they reach a repository. Validators either return a
// normalized value or fail with a *common.ValidationError whose message is
// safe to surface to the client.
package validate

import (
	"regexp"
	"strings"

	"github.com/RaivoMihlenovs/capstone-project/internal/common"
	"github.com/shopspring/decimal"
)

var (
	// Conservative blocklist, not a full sanitizer: script blocks go first
	// (with their contents), then any remaining markup. Formatting is not
	// preserved.
	scriptRe = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	tagRe    = regexp.MustCompile(`<[^>]*>`)

	// local@domain.tld with a TLD of at least 2 characters.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
)

// SanitizeString trims whitespace, enforces maxLen and strips HTML markup
// including script blocks.
func SanitizeString(field, s string, maxLen int) (string, error) {
	out := strings.TrimSpace(s)

	if len(out) > maxLen {
		return "", common.NewValidationError(field, "Input exceeds maximum length of %d characters", maxLen)
	}

	out = scriptRe.ReplaceAllString(out, "")
	out = tagRe.ReplaceAllString(out, "")

	return out, nil
}

// Required fails when the value is empty.
func Required(field, s string) (string, error) {
	if s == "" {
		return "", common.NewValidationError(field, "%s is required", field)
	}
	return s, nil
}

// Email checks the address shape and normalizes it to lowercase.
func Email(s string) (string, error) {
	out := strings.TrimSpace(s)
	if !emailRe.MatchString(out) {
		return "", common.NewValidationError("Email", "Invalid email format")
	}
	return strings.ToLower(out), nil
}

// Password enforces the registration-time strength rule. Login does not
// re-check it.
func Password(s string) (string, error) {
	if len(s) < 6 {
		return "", common.NewValidationError("Password", "Password must be at least 6 characters long")
	}
	return s, nil
}

// PositiveNumber rejects negative amounts.
func PositiveNumber(field string, d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Zero, common.NewValidationError(field, "%s must be a positive number", field)
	}
	return d, nil
}

// PositiveInt rejects negative integers.
func PositiveInt(field string, n int64) (int64, error) {
	if n < 0 {
		return 0, common.NewValidationError(field, "%s must be a positive integer", field)
	}
	return n, nil
}

// ProductData carries the untrusted fields of a product create/update payload.
type ProductData struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
	Category    string
	ImageURL    string
}

// Product validates and normalizes a product payload. Validation stops at the
// first failing field.
func Product(in ProductData) (ProductData, error) {
	var out ProductData
	var err error

	name, err := SanitizeString("Product name", in.Name, 200)
	if err != nil {
		return out, err
	}
	if out.Name, err = Required("Product name", name); err != nil {
		return out, err
	}
	if out.Description, err = SanitizeString("Description", in.Description, 2000); err != nil {
		return out, err
	}
	if out.Price, err = PositiveNumber("Price", in.Price); err != nil {
		return out, err
	}
	if out.Stock, err = PositiveInt("Stock", in.Stock); err != nil {
		return out, err
	}
	if in.Category != "" {
		if out.Category, err = SanitizeString("Category", in.Category, 100); err != nil {
			return out, err
		}
	}
	if in.ImageURL != "" {
		if out.ImageURL, err = SanitizeString("Image URL", in.ImageURL, 500); err != nil {
			return out, err
		}
	}

	return out, nil
}

// RegistrationData carries the untrusted fields of a registration payload.
type RegistrationData struct {
	Name     string
	Email    string
	Password string
}

// Registration validates and normalizes a registration payload.
func Registration(in RegistrationData) (RegistrationData, error) {
	var out RegistrationData
	var err error

	name, err := SanitizeString("Name", in.Name, 100)
	if err != nil {
		return out, err
	}
	if out.Name, err = Required("Name", name); err != nil {
		return out, err
	}
	if out.Email, err = Email(in.Email); err != nil {
		return out, err
	}
	if out.Password, err = Password(in.Password); err != nil {
		return out, err
	}

	return out, nil
}

// LoginData carries the untrusted fields of a login payload.
type LoginData struct {
	Email    string
	Password string
}

// Login validates a login payload. Any non-empty password is accepted; the
// strength rule applies to registration only.
func Login(in LoginData) (LoginData, error) {
	var out LoginData
	var err error

	if out.Email, err = Email(in.Email); err != nil {
		return out, err
	}
	if out.Password, err = Required("Password", in.Password); err != nil {
		return out, err
	}

	return out, nil
}

// CartItemData carries the untrusted fields of a cart payload.
type CartItemData struct {
	ProductID int64
	Quantity  int64
}

// CartItem validates a cart payload.
func CartItem(in CartItemData) (CartItemData, error) {
	var out CartItemData
	var err error

	if out.ProductID, err = PositiveInt("Product ID", in.ProductID); err != nil {
		return out, err
	}
	if out.Quantity, err = PositiveInt("Quantity", in.Quantity); err != nil {
		return out, err
	}

	return out, nil
}
