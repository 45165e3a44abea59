package user

import "strings"

// RegisterInput carries the raw registration form values.
type RegisterInput struct {
	Username    string
	Password    string
	CountryCode string
	Phone       string
}

// UpdateInput carries the raw values of the "update details" form.
type UpdateInput struct {
	CurrentUsername string
	NewUsername     string
	NewPassword     string
	CountryCode     string
	NewPhone        string
}

// Register appends a new owner with no bookings.
func Register(records []Record, rules PhoneRules, in RegisterInput) ([]Record, Record, error) {
	username := strings.TrimSpace(in.Username)
	password := strings.TrimSpace(in.Password)
	phone := strings.TrimSpace(in.Phone)

	if username == "" {
		return nil, Record{}, ErrUsernameRequired
	}
	if IndexOf(records, username) != -1 {
		return nil, Record{}, ErrUsernameTaken
	}

	fullPhone, err := rules.Validate(in.CountryCode, phone)
	if err != nil {
		return nil, Record{}, err
	}

	rec := Record{
		Username: username,
		Password: password,
		Phone:    fullPhone,
	}

	out := append(CloneAll(records), rec)
	return out, rec, nil
}

// UpdateDetails overwrites an owner's username, password and phone, then
// renames every booking entry made under the old username.
func UpdateDetails(records []Record, rules PhoneRules, in UpdateInput) ([]Record, Record, error) {
	current := strings.TrimSpace(in.CurrentUsername)
	newUsername := strings.TrimSpace(in.NewUsername)
	newPassword := strings.TrimSpace(in.NewPassword)

	fullPhone, err := rules.Validate(in.CountryCode, strings.TrimSpace(in.NewPhone))
	if err != nil {
		return nil, Record{}, err
	}
	if newUsername == "" {
		return nil, Record{}, ErrUsernameRequired
	}

	idx := IndexOf(records, current)
	if idx == -1 {
		return nil, Record{}, ErrNotFound
	}
	for i := range records {
		if i != idx && records[i].Username == newUsername {
			return nil, Record{}, ErrUsernameTaken
		}
	}

	out := CloneAll(records)
	out[idx].Username = newUsername
	out[idx].Password = newPassword
	out[idx].Phone = fullPhone

	if newUsername != current {
		for i := range out {
			renameRequester(&out[i], current, newUsername)
		}
	}

	return out, out[idx], nil
}

// DeleteProfile removes an owner after checking credentials and the explicit
// confirmation gate. Every request or booking made under the username, on any
// owner, is removed first.
func DeleteProfile(records []Record, username, password string, confirmed bool) ([]Record, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	idx := -1
	for i := range records {
		if records[i].Username == username && records[i].Password == password {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrInvalidCredentials
	}
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	out := CloneAll(records)
	for i := range out {
		removeRequester(&out[i], username)
	}

	return append(out[:idx], out[idx+1:]...), nil
}

func renameRequester(r *Record, from, to string) {
	for i := range r.BookingRequests {
		if r.BookingRequests[i].Name == from {
			r.BookingRequests[i].Name = to
		}
	}
	for i := range r.ConfirmedBookings {
		if r.ConfirmedBookings[i].Name == from {
			r.ConfirmedBookings[i].Name = to
		}
	}
}

func removeRequester(r *Record, name string) {
	if r.BookingRequests != nil {
		kept := r.BookingRequests[:0]
		for _, req := range r.BookingRequests {
			if req.Name != name {
				kept = append(kept, req)
			}
		}
		r.BookingRequests = kept
	}
	if r.ConfirmedBookings != nil {
		kept := r.ConfirmedBookings[:0]
		for _, b := range r.ConfirmedBookings {
			if b.Name != name {
				kept = append(kept, b)
			}
		}
		r.ConfirmedBookings = kept
	}
}
