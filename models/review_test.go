package models

import (
	"errors"
	"testing"
)

func TestReviewModerationFlow(t *testing.T) {
	initTestDB(t)
	review, err := CreateReview(ReviewInput{Author: "Mona", Rating: 5, Text: "جميل جدًا"})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if review.Approved {
		t.Error("new review must land unapproved")
	}
	public, _ := ApprovedReviews()
	if len(public) != 0 {
		t.Error("unapproved review is publicly visible")
	}

	approved := true
	if _, err := ModerateReview(review.ID, &approved, nil); err != nil {
		t.Fatalf("ModerateReview: %v", err)
	}
	public, _ = ApprovedReviews()
	if len(public) != 1 {
		t.Fatal("approved review missing from public listing")
	}

	if err := DeleteReview(review.ID); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	if err := DeleteReview(review.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete error = %v, want ErrNotFound", err)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	initTestDB(t)
	tests := []struct {
		name string
		in   ReviewInput
	}{
		{"no author", ReviewInput{Rating: 4}},
		{"rating low", ReviewInput{Author: "x", Rating: 0}},
		{"rating high", ReviewInput{Author: "x", Rating: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CreateReview(tt.in); !errors.Is(err, ErrValidation) {
				t.Errorf("CreateReview() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestFeaturedReviewsSortFirst(t *testing.T) {
	initTestDB(t)
	plain, _ := CreateReview(ReviewInput{Author: "A", Rating: 4})
	starred, _ := CreateReview(ReviewInput{Author: "B", Rating: 5})
	approved, featured := true, true
	ModerateReview(plain.ID, &approved, nil)
	ModerateReview(starred.ID, &approved, &featured)

	public, err := ApprovedReviews()
	if err != nil {
		t.Fatalf("ApprovedReviews: %v", err)
	}
	if len(public) != 2 || public[0].ID != starred.ID {
		t.Error("featured review should sort first")
	}
}
