package domain

import "time"

// ReviewSubject names what a review is attached to.
type ReviewSubject string

const (
	ReviewRestaurant ReviewSubject = "restaurant"
	ReviewMeal       ReviewSubject = "meal"
	ReviewCustomMeal ReviewSubject = "custom_meal"
)

// Review holds a 1..5 rating with a comment. A user may review a given
// subject at most once.
type Review struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Subject   ReviewSubject `json:"subject"`
	SubjectID string        `json:"subjectId"`
	Rating    int           `json:"rating"`
	Comment   string        `json:"comment"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// RatingSummary aggregates reviews for one subject.
type RatingSummary struct {
	Subject   ReviewSubject `json:"subject"`
	SubjectID string        `json:"subjectId"`
	Average   float64       `json:"avgRating"`
	Count     int           `json:"reviewCount"`
}
