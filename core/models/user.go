// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package models

import (
	"context"

	"github.com/pkg/errors"
	"github.com/relabs-tech/jobly/core"
	"github.com/relabs-tech/jobly/core/clause"
	"github.com/relabs-tech/jobly/core/csql"
	"golang.org/x/crypto/bcrypt"
)

// User is a user without password
type User struct {
	Username  string `db:"username" json:"username"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Email     string `db:"email" json:"email"`
	IsAdmin   bool   `db:"is_admin" json:"isAdmin"`
}

// UserDetail is a user with the ids of the jobs the user applied for
type UserDetail struct {
	User
	Jobs []int `json:"jobs"`
}

// UserNew holds the data of a new user
type UserNew struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

// UserUpdate holds the fields of a partial user update. The username cannot be
// changed, a new password is hashed before it is stored.
type UserUpdate struct {
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	IsAdmin   *bool   `json:"isAdmin"`
}

const userColumns = `username, first_name, last_name, email, is_admin`

var userUpdateColumns = clause.SnakeColumns("firstName", "lastName", "isAdmin")

// Users is the resource accessor for users
type Users struct {
	db               *csql.DB
	bcryptWorkFactor int
}

func (u *Users) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptWorkFactor)
	if err != nil {
		return "", errors.Wrap(err, "cannot hash password")
	}
	return string(hashed), nil
}

// Register inserts a new user. The username must not be taken.
func (u *Users) Register(ctx context.Context, user UserNew) (*User, error) {
	var username string
	err := u.db.GetContext(ctx, &username, `SELECT username FROM users WHERE username = $1`, user.Username)
	if err == nil {
		return nil, core.NewValidationError("Duplicate username: %s", user.Username)
	}
	if !isNoRows(err) {
		return nil, dbError(err, "cannot check for duplicate username")
	}

	hashed, err := u.hash(user.Password)
	if err != nil {
		return nil, err
	}
	created := &User{}
	err = u.db.GetContext(ctx, created,
		`INSERT INTO users (username, password, first_name, last_name, email, is_admin)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+userColumns,
		user.Username, hashed, user.FirstName, user.LastName, user.Email, user.IsAdmin)
	if err != nil {
		return nil, dbError(err, "cannot insert user")
	}
	return created, nil
}

// Authenticate returns the user if username and password match. Unknown users
// and wrong passwords yield the same AuthorizationError.
func (u *Users) Authenticate(ctx context.Context, username, password string) (*User, error) {
	row := struct {
		User
		Password string `db:"password"`
	}{}
	err := u.db.GetContext(ctx, &row, `SELECT `+userColumns+`, password FROM users WHERE username = $1`, username)
	if isNoRows(err) {
		return nil, core.NewAuthorizationError("Invalid username/password")
	}
	if err != nil {
		return nil, dbError(err, "cannot read user")
	}
	if bcrypt.CompareHashAndPassword([]byte(row.Password), []byte(password)) != nil {
		return nil, core.NewAuthorizationError("Invalid username/password")
	}
	user := row.User
	return &user, nil
}

// FindAll returns all users ordered by username
func (u *Users) FindAll(ctx context.Context) ([]User, error) {
	users := []User{}
	err := u.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, dbError(err, "cannot list users")
	}
	return users, nil
}

// Get returns the user with username and the ids of the jobs they applied for
func (u *Users) Get(ctx context.Context, username string) (*UserDetail, error) {
	user := &UserDetail{}
	err := u.db.GetContext(ctx, &user.User, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if isNoRows(err) {
		return nil, core.NewNotFoundError("No user: %s", username)
	}
	if err != nil {
		return nil, dbError(err, "cannot read user")
	}

	user.Jobs = []int{}
	err = u.db.SelectContext(ctx, &user.Jobs,
		`SELECT job_id FROM applications WHERE username = $1 ORDER BY job_id`, username)
	if err != nil {
		return nil, dbError(err, "cannot read applications of user")
	}
	return user, nil
}

// Update applies a partial update to the user with username
func (u *Users) Update(ctx context.Context, username string, data UserUpdate) (*User, error) {
	update := clause.NewUpdate(userUpdateColumns)
	if data.FirstName != nil {
		update.Set("firstName", *data.FirstName)
	}
	if data.LastName != nil {
		update.Set("lastName", *data.LastName)
	}
	if data.Email != nil {
		update.Set("email", *data.Email)
	}
	if data.IsAdmin != nil {
		update.Set("isAdmin", *data.IsAdmin)
	}
	if data.Password != nil {
		hashed, err := u.hash(*data.Password)
		if err != nil {
			return nil, err
		}
		update.Set("password", hashed)
	}
	set, err := update.Build()
	if err != nil {
		return nil, err
	}

	user := &User{}
	err = u.db.GetContext(ctx, user,
		`UPDATE users SET `+set.SQL+` WHERE username = `+set.Next()+` RETURNING `+userColumns,
		append(set.Values, username)...)
	if isNoRows(err) {
		return nil, core.NewNotFoundError("No user: %s", username)
	}
	if err != nil {
		return nil, dbError(err, "cannot update user")
	}
	return user, nil
}

// Remove deletes the user with username, together with their applications
func (u *Users) Remove(ctx context.Context, username string) error {
	var deleted string
	err := u.db.GetContext(ctx, &deleted, `DELETE FROM users WHERE username = $1 RETURNING username`, username)
	if isNoRows(err) {
		return core.NewNotFoundError("No user: %s", username)
	}
	if err != nil {
		return dbError(err, "cannot delete user")
	}
	return nil
}

// ApplyToJob records an application of the user for the job. Applying twice
// for the same job is not an error.
func (u *Users) ApplyToJob(ctx context.Context, username string, jobID int) error {
	var id int
	err := u.db.GetContext(ctx, &id, `SELECT id FROM jobs WHERE id = $1`, jobID)
	if isNoRows(err) {
		return core.NewNotFoundError("No job: %d", jobID)
	}
	if err != nil {
		return dbError(err, "cannot read job")
	}

	var name string
	err = u.db.GetContext(ctx, &name, `SELECT username FROM users WHERE username = $1`, username)
	if isNoRows(err) {
		return core.NewNotFoundError("No user: %s", username)
	}
	if err != nil {
		return dbError(err, "cannot read user")
	}

	_, err = u.db.ExecContext(ctx,
		`INSERT INTO applications (job_id, username) VALUES ($1, $2) ON CONFLICT DO NOTHING`, jobID, username)
	if err != nil {
		return dbError(err, "cannot insert application")
	}
	return nil
}
