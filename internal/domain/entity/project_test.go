package entity

import "testing"

func intPtr(i int) *int { return &i }

func TestSortProjectsForDisplay(t *testing.T) {
	projects := []Project{
		{Title: "plain-2", Order: intPtr(2)},
		{Title: "featured-3", Featured: true, Order: intPtr(3)},
		{Title: "plain-1", Order: intPtr(1)},
		{Title: "featured-1", Featured: true, Order: intPtr(1)},
		{Title: "featured-unordered", Featured: true},
		{Title: "plain-1-again", Order: intPtr(1)},
	}

	SortProjectsForDisplay(projects)

	want := []string{"featured-unordered", "featured-1", "featured-3", "plain-1", "plain-1-again", "plain-2"}
	for i, title := range want {
		if projects[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, projects[i].Title)
		}
	}
}

func TestExperienceNormalize(t *testing.T) {
	end := "2021-12-31"
	e := Experience{Current: true, EndDate: &end}
	e.Normalize()
	if e.EndDate != nil {
		t.Errorf("expected end date cleared for current position, got %q", *e.EndDate)
	}

	past := Experience{Current: false, EndDate: &end}
	past.Normalize()
	if past.EndDate == nil || *past.EndDate != end {
		t.Error("expected end date kept for past position")
	}
}
