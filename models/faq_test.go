package models

import (
	"errors"
	"testing"
)

func createTestFAQs(t *testing.T, questions ...string) []FAQ {
	t.Helper()
	faqs := make([]FAQ, 0, len(questions))
	for _, q := range questions {
		faq, err := CreateFAQ(q, "answer", true)
		if err != nil {
			t.Fatalf("creating faq %q: %v", q, err)
		}
		faqs = append(faqs, *faq)
	}
	return faqs
}

func TestCreateFAQAppendsToEnd(t *testing.T) {
	initTestDB(t)
	faqs := createTestFAQs(t, "Shipping?", "Custom orders?", "Care instructions?")
	for i, faq := range faqs {
		if faq.SortOrder != i {
			t.Errorf("faq[%d].sort_order = %d, want %d", i, faq.SortOrder, i)
		}
	}
	if _, err := CreateFAQ("", "x", true); !errors.Is(err, ErrValidation) {
		t.Errorf("CreateFAQ(empty question) error = %v, want ErrValidation", err)
	}
}

func TestPublishedFAQsFilters(t *testing.T) {
	initTestDB(t)
	createTestFAQs(t, "Visible?")
	if _, err := CreateFAQ("Hidden?", "x", false); err != nil {
		t.Fatalf("CreateFAQ: %v", err)
	}
	public, err := PublishedFAQs()
	if err != nil {
		t.Fatalf("PublishedFAQs: %v", err)
	}
	if len(public) != 1 || public[0].Question != "Visible?" {
		t.Errorf("published faqs = %+v, want [Visible?]", public)
	}
	all, err := AllFAQs()
	if err != nil {
		t.Fatalf("AllFAQs: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all faqs = %d, want 2", len(all))
	}
}

func TestReorderFAQsCorrectness(t *testing.T) {
	initTestDB(t)
	faqs := createTestFAQs(t, "A", "B", "C")
	reordered, err := ReorderFAQs([]uint64{faqs[2].ID, faqs[0].ID, faqs[1].ID})
	if err != nil {
		t.Fatalf("ReorderFAQs: %v", err)
	}
	want := []string{"C", "A", "B"}
	for i, faq := range reordered {
		if faq.Question != want[i] {
			t.Fatalf("order = %+v, want %v", reordered, want)
		}
		if faq.SortOrder != i {
			t.Errorf("sort_order[%d] = %d, want %d", i, faq.SortOrder, i)
		}
	}
}

// Same rollback contract as the media reorder: a failed write midway
// through leaves the original order fully intact
func TestReorderFAQsRollsBackOnMidwayFailure(t *testing.T) {
	initTestDB(t)
	faqs := createTestFAQs(t, "A", "B", "C")

	failNthUpdate(t, 2)
	_, err := ReorderFAQs([]uint64{faqs[2].ID, faqs[1].ID, faqs[0].ID})
	if err == nil {
		t.Fatal("ReorderFAQs with a failing write returned no error")
	}

	fresh, err := AllFAQs()
	if err != nil {
		t.Fatalf("AllFAQs: %v", err)
	}
	for i, faq := range fresh {
		if faq.ID != faqs[i].ID || faq.SortOrder != i {
			t.Fatalf("order after failed reorder = %+v, want original %+v", fresh, faqs)
		}
	}
}

func TestUpdateAndDeleteFAQ(t *testing.T) {
	initTestDB(t)
	faqs := createTestFAQs(t, "Old question?")

	question := "New question?"
	published := false
	updated, err := UpdateFAQ(faqs[0].ID, &question, nil, &published)
	if err != nil {
		t.Fatalf("UpdateFAQ: %v", err)
	}
	if updated.Question != question || updated.Published {
		t.Errorf("updated = %+v", updated)
	}

	if err := DeleteFAQ(faqs[0].ID); err != nil {
		t.Fatalf("DeleteFAQ: %v", err)
	}
	if err := DeleteFAQ(faqs[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteFAQ(missing) error = %v, want ErrNotFound", err)
	}
}
