package store

// User is a dashboard account. Users are never hard-deleted; they are
// deactivated through the status toggle instead.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email" validate:"required,useremail"`
	Password string `json:"-" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"oneof=admin user"`
	Status   string `json:"status" validate:"oneof=active inactive"`
	Role     string `json:"role"`
}

// NewUser builds a User with status "active". The password is expected to
// be already hashed by the caller.
func NewUser(email, password, name, userType, role string) (*User, error) {
	u := &User{
		Email:    email,
		Password: password,
		Name:     name,
		Type:     userType,
		Status:   "active",
		Role:     role,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate re-runs every field rule. It is called at construction and on
// every mutation, so an invalid user never reaches the repository.
func (u *User) Validate() error {
	return translateValidation(validate.Struct(u))
}

// SetEmail replaces the email, failing the same way as construction would.
func (u *User) SetEmail(email string) error {
	old := u.Email
	u.Email = email
	if err := u.Validate(); err != nil {
		u.Email = old
		return err
	}
	return nil
}

// SetType replaces the account type (admin or user).
func (u *User) SetType(userType string) error {
	old := u.Type
	u.Type = userType
	if err := u.Validate(); err != nil {
		u.Type = old
		return err
	}
	return nil
}

// SetStatus replaces the availability status (active or inactive).
func (u *User) SetStatus(status string) error {
	old := u.Status
	u.Status = status
	if err := u.Validate(); err != nil {
		u.Status = old
		return err
	}
	return nil
}

// IsAdmin reports whether the user holds the admin type.
func (u *User) IsAdmin() bool {
	return u.Type == "admin"
}

// ToMap returns the flat field-to-value representation handed to the
// serialization layer. The password hash is not exposed.
func (u *User) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":     u.ID,
		"email":  u.Email,
		"name":   u.Name,
		"type":   u.Type,
		"status": u.Status,
		"role":   u.Role,
	}
}
