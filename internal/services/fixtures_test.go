package services

import (
	"github.com/wisker-app/wisker/internal/domain/plan"
	"github.com/wisker-app/wisker/internal/domain/user"
)

// testPlans mirrors the seeded catalog
func testPlans() []*plan.Plan {
	return []*plan.Plan{
		{PlanType: user.PlanTypeFree, Name: "Free", Currency: "PHP",
			DailyCredits: 10, NotesLimit: 50, SubjectsLimit: 5, IsActive: true, SortOrder: 0},
		{PlanType: user.PlanTypePro, Name: "Pro", MonthlyPrice: 149, YearlyPrice: 1430, Currency: "PHP",
			DailyCredits: 50, NotesLimit: 200, SubjectsLimit: 20, IsActive: true, SortOrder: 1},
		{PlanType: user.PlanTypePremium, Name: "Premium", MonthlyPrice: 299, YearlyPrice: 2870, Currency: "PHP",
			DailyCredits: 200, NotesLimit: -1, SubjectsLimit: -1, IsActive: true, SortOrder: 2},
	}
}
