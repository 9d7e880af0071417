package model

import (
	"time"
)

type Book struct {
	ID            int    `json:"id" db:"id"`
	Title         string `json:"title" db:"title"`
	Author        string `json:"author" db:"author"`
	Description   string `json:"description" db:"description"`
	PublishedYear int    `json:"publishedYear" db:"published_year"`
}

type Genre struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Comment struct {
	ID        int       `json:"id" db:"id"`
	BookID    int       `json:"bookId" db:"book_id"`
	UserID    int       `json:"userId" db:"user_id"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Rating struct {
	BookID int `json:"bookId" db:"book_id"`
	UserID int `json:"userId" db:"user_id"`
	Rating int `json:"rating" db:"rating"`
}

type Person struct {
	ID        int    `json:"id" db:"id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Email     string `json:"email" db:"email"`
	Phone     string `json:"phone" db:"phone"`
}

func (p Person) DisplayName() string {
	return p.FirstName + " " + p.LastName
}

type User struct {
	ID       int    `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"`
	Email    string `json:"email" db:"email"`
}

// ViewComment pairs a comment's text with its author's display name. Derived
// per request, never persisted.
type ViewComment struct {
	Author  string `json:"author"`
	Comment string `json:"comment"`
}

// BookView is the composite consumed by the book detail page.
type BookView struct {
	Book
	Genres        []Genre       `json:"genres"`
	Ratings       []Rating      `json:"ratings"`
	OverallRating float64       `json:"overallRating"`
	Comments      []Comment     `json:"comments"`
	ViewComments  []ViewComment `json:"viewComments"`
	UserRating    *int          `json:"userRating,omitempty"`
}

type NewBook struct {
	Title         string `json:"title" form:"title" validate:"required"`
	Author        string `json:"author" form:"author" validate:"required"`
	Description   string `json:"description" form:"description"`
	PublishedYear int    `json:"publishedYear" form:"publishedYear"`
	Genres        []int  `json:"genres" form:"genres" validate:"required,min=1"`
}

type NewComment struct {
	Comment string `json:"comment" form:"comment" validate:"required"`
}

type NewRating struct {
	Rating int `json:"rating" form:"rating" validate:"required,gte=1,lte=5"`
}

type UpdatePerson struct {
	ID        int    `json:"id" form:"id" validate:"required"`
	FirstName string `json:"firstName" form:"firstName" validate:"required"`
	LastName  string `json:"lastName" form:"lastName" validate:"required"`
	Email     string `json:"email" form:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" form:"phone"`
	CSRFToken string `json:"csrfToken" form:"csrfToken"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
	CSRFToken   string `json:"csrfToken"`
}
