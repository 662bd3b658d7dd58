package service

import (
	"context"
	"errors"
	"testing"

	"github.com/automation-market/marketplace/internal/domain"
	domainmocks "github.com/automation-market/marketplace/internal/domain/mocks"
	"github.com/automation-market/marketplace/internal/utils/money"
	"github.com/automation-market/marketplace/internal/utils/validate"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalogItem(title string, categories []string, cost, price int64, rating float64, reviews int) *domain.Automation {
	a := &domain.Automation{
		ID:             uuid.New(),
		Title:          title,
		Description:    title + " workflow",
		Categories:     categories,
		Platforms:      []string{"Zapier"},
		Cost:           money.New(decimal.NewFromInt(cost)),
		SuggestedPrice: money.New(decimal.NewFromInt(price)),
		Status:         domain.AutomationActive,
		Rating:         rating,
		ReviewCount:    reviews,
	}
	a.ComputeEconomics()
	return a
}

func titles(items []*domain.Automation) []string {
	out := make([]string, len(items))
	for i, a := range items {
		out[i] = a.Title
	}
	return out
}

func TestFilterAutomations(t *testing.T) {
	viewer := uuid.New()
	other := uuid.New()

	newsletter := catalogItem("Newsletter", []string{"Email Marketing"}, 100, 400, 4.8, 10)
	drip := catalogItem("Drip Campaign", []string{"email-marketing", "sales"}, 200, 900, 4.2, 40)
	leads := catalogItem("Lead Scoring", []string{"sales"}, 300, 500, 4.9, 5)
	leads.Features = []string{"HubSpot sync"}
	paused := catalogItem("Paused Bot", []string{"email-marketing"}, 50, 100, 3.0, 1)
	paused.Status = domain.AutomationInactive
	mine := catalogItem("Private Flow", []string{"sales"}, 100, 300, 5.0, 0)
	mine.AssignedUserID = &viewer
	foreign := catalogItem("Foreign Flow", []string{"email-marketing"}, 100, 300, 5.0, 0)
	foreign.AssignedUserID = &other

	items := []*domain.Automation{newsletter, drip, leads, paused, mine, foreign}

	tests := []struct {
		name   string
		filter domain.AutomationFilter
		want   []string
	}{
		{
			name: "No filter hides other users' exclusives",
			want: []string{"Newsletter", "Drip Campaign", "Lead Scoring", "Paused Bot", "Private Flow"},
		},
		{
			name:   "Category matches normalized names",
			filter: domain.AutomationFilter{Category: "email-marketing"},
			want:   []string{"Newsletter", "Drip Campaign", "Paused Bot"},
		},
		{
			name:   "Category all disables the filter",
			filter: domain.AutomationFilter{Category: "all", AvailableOnly: true},
			want:   []string{"Newsletter", "Drip Campaign", "Lead Scoring", "Private Flow"},
		},
		{
			name:   "Search covers features",
			filter: domain.AutomationFilter{Search: "hubspot"},
			want:   []string{"Lead Scoring"},
		},
		{
			name:   "Search is case insensitive on title",
			filter: domain.AutomationFilter{Search: "DRIP"},
			want:   []string{"Drip Campaign"},
		},
		{
			name:   "Sort by price ascending",
			filter: domain.AutomationFilter{Category: "sales", Sort: domain.SortPriceLow},
			want:   []string{"Private Flow", "Lead Scoring", "Drip Campaign"},
		},
		{
			name:   "Sort by price descending",
			filter: domain.AutomationFilter{Category: "sales", Sort: domain.SortPriceHigh},
			want:   []string{"Drip Campaign", "Lead Scoring", "Private Flow"},
		},
		{
			name:   "Sort by profit",
			filter: domain.AutomationFilter{Category: "email-marketing", Sort: domain.SortProfit},
			want:   []string{"Drip Campaign", "Newsletter", "Paused Bot"},
		},
		{
			name:   "Sort by rating",
			filter: domain.AutomationFilter{AvailableOnly: true, Sort: domain.SortRating},
			want:   []string{"Private Flow", "Lead Scoring", "Newsletter", "Drip Campaign"},
		},
		{
			name:   "Sort by popularity",
			filter: domain.AutomationFilter{Category: "email-marketing", Sort: domain.SortPopular},
			want:   []string{"Drip Campaign", "Newsletter", "Paused Bot"},
		},
		{
			name:   "Newest keeps repository order",
			filter: domain.AutomationFilter{Category: "sales", Sort: domain.SortNewest},
			want:   []string{"Drip Campaign", "Lead Scoring", "Private Flow"},
		},
		{
			name:   "Nothing matches",
			filter: domain.AutomationFilter{Search: "blockchain"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAutomations(items, tt.filter, viewer)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestFilterAutomations_StableSort(t *testing.T) {
	first := catalogItem("First", []string{"sales"}, 100, 500, 4.0, 1)
	second := catalogItem("Second", []string{"sales"}, 100, 500, 4.0, 1)
	third := catalogItem("Third", []string{"sales"}, 100, 200, 4.0, 1)

	got := FilterAutomations([]*domain.Automation{first, second, third}, domain.AutomationFilter{Sort: domain.SortPriceHigh}, uuid.New())
	assert.Equal(t, []string{"First", "Second", "Third"}, titles(got))
}

func TestCatalogService_GetAutomation(t *testing.T) {
	mockRepo := domainmocks.NewAutomationRepositoryMock(t)
	svc := NewCatalogService(mockRepo, nil, validate.New())
	ctx := context.Background()

	t.Run("Exclusive to viewer", func(t *testing.T) {
		viewer := uuid.New()
		a := catalogItem("Private Flow", []string{"sales"}, 100, 300, 5.0, 0)
		a.AssignedUserID = &viewer

		mockRepo.On("GetAutomationByID", mock.Anything, a.ID).Return(a, nil).Once()

		result, err := svc.GetAutomation(ctx, viewer, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a, result)
	})

	t.Run("Exclusive to someone else", func(t *testing.T) {
		owner := uuid.New()
		a := catalogItem("Private Flow", []string{"sales"}, 100, 300, 5.0, 0)
		a.AssignedUserID = &owner

		mockRepo.On("GetAutomationByID", mock.Anything, a.ID).Return(a, nil).Once()

		result, err := svc.GetAutomation(ctx, uuid.New(), a.ID)
		assert.ErrorIs(t, err, domain.ErrAutomationNotFound)
		assert.Nil(t, result)
	})
}

func TestCatalogService_ListAutomations(t *testing.T) {
	mockRepo := domainmocks.NewAutomationRepositoryMock(t)
	svc := NewCatalogService(mockRepo, nil, validate.New())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		items := []*domain.Automation{
			catalogItem("Newsletter", []string{"email-marketing"}, 100, 400, 4.8, 10),
			catalogItem("Lead Scoring", []string{"sales"}, 300, 500, 4.9, 5),
		}

		mockRepo.On("ListAutomations", mock.Anything).Return(items, nil).Once()

		result, err := svc.ListAutomations(ctx, uuid.New(), domain.AutomationFilter{Category: "sales"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Lead Scoring"}, titles(result))
	})

	t.Run("Database error", func(t *testing.T) {
		mockRepo.On("ListAutomations", mock.Anything).Return(nil, errors.New("db error")).Once()

		result, err := svc.ListAutomations(ctx, uuid.New(), domain.AutomationFilter{})
		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestCatalogService_CreateAutomation(t *testing.T) {
	mockRepo := domainmocks.NewAutomationRepositoryMock(t)
	svc := NewCatalogService(mockRepo, nil, validate.New())
	ctx := context.Background()

	t.Run("Success computes economics", func(t *testing.T) {
		input := domain.AutomationInput{
			Title:          "Invoice Sync",
			Categories:     []string{"finance"},
			Cost:           "$200",
			SuggestedPrice: "$500/month",
		}

		mockRepo.On("CreateAutomation", mock.Anything, mock.MatchedBy(func(a *domain.Automation) bool {
			return a.Status == domain.AutomationActive &&
				a.Cost.Cents() == 20000 &&
				a.SuggestedPrice.Period == money.PeriodMonthly &&
				a.Profit.Cents() == 30000
		})).Return(&domain.Automation{ID: uuid.New(), Title: "Invoice Sync"}, nil).Once()

		created, err := svc.CreateAutomation(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "Invoice Sync", created.Title)
	})

	t.Run("Invalid prices", func(t *testing.T) {
		input := domain.AutomationInput{
			Title:          "Invoice Sync",
			Categories:     []string{"finance"},
			Cost:           "-10",
			SuggestedPrice: "free",
		}

		created, err := svc.CreateAutomation(ctx, input)
		require.Error(t, err)
		assert.Nil(t, created)

		var verrs *validate.Errors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.Fields, "cost")
		assert.Contains(t, verrs.Fields, "suggested_price")
	})

	t.Run("Prices above the cap", func(t *testing.T) {
		input := domain.AutomationInput{
			Title:          "Invoice Sync",
			Categories:     []string{"finance"},
			Cost:           "1000000.01",
			SuggestedPrice: "184467440737094516.16",
		}

		created, err := svc.CreateAutomation(ctx, input)
		require.Error(t, err)
		assert.Nil(t, created)

		var verrs *validate.Errors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.Fields["cost"], "must not exceed")
		assert.Contains(t, verrs.Fields["suggested_price"], "must not exceed")
	})

	t.Run("Missing title", func(t *testing.T) {
		created, err := svc.CreateAutomation(ctx, domain.AutomationInput{Categories: []string{"finance"}, Cost: "1", SuggestedPrice: "2"})
		require.Error(t, err)
		assert.Nil(t, created)

		var verrs *validate.Errors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.Fields, "title")
	})
}

func TestCatalogService_UpdateAutomation(t *testing.T) {
	mockRepo := domainmocks.NewAutomationRepositoryMock(t)
	svc := NewCatalogService(mockRepo, nil, validate.New())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		a := catalogItem("Old", []string{"sales"}, 100, 300, 4.0, 2)
		input := domain.AutomationInput{
			Title:          "New",
			Categories:     []string{"sales"},
			Cost:           "100",
			SuggestedPrice: "250",
			Status:         domain.AutomationInactive,
		}

		mockRepo.On("GetAutomationByID", mock.Anything, a.ID).Return(a, nil).Once()
		mockRepo.On("UpdateAutomation", mock.Anything, a).Return(nil).Once()

		updated, err := svc.UpdateAutomation(ctx, a.ID, input)
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, domain.AutomationInactive, updated.Status)
		assert.Equal(t, "$150.00", updated.Profit.Display())
	})

	t.Run("Automation not found", func(t *testing.T) {
		id := uuid.New()

		mockRepo.On("GetAutomationByID", mock.Anything, id).Return(nil, domain.ErrAutomationNotFound).Once()

		updated, err := svc.UpdateAutomation(ctx, id, domain.AutomationInput{})
		assert.ErrorIs(t, err, domain.ErrAutomationNotFound)
		assert.Nil(t, updated)
	})
}

func TestCatalogService_UploadMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("Storage disabled", func(t *testing.T) {
		svc := NewCatalogService(domainmocks.NewAutomationRepositoryMock(t), nil, validate.New())

		result, err := svc.UploadMedia(ctx, uuid.New(), "demo.png", []byte("png"))
		assert.ErrorIs(t, err, domain.ErrMediaStorageDisabled)
		assert.Nil(t, result)
	})

	t.Run("Success", func(t *testing.T) {
		mockRepo := domainmocks.NewAutomationRepositoryMock(t)
		mockMedia := domainmocks.NewMediaStoreMock(t)
		svc := NewCatalogService(mockRepo, mockMedia, validate.New())

		a := catalogItem("Lead Bot", []string{"sales"}, 100, 300, 4.0, 2)
		data := []byte("png-bytes")
		key := "automations/" + uuid.NewString() + ".png"

		mockRepo.On("GetAutomationByID", mock.Anything, a.ID).Return(a, nil).Once()
		mockMedia.On("Upload", mock.Anything, data, "demo.png").Return(key, nil).Once()
		mockRepo.On("AppendMedia", mock.Anything, a.ID, key).Return(nil).Once()

		result, err := svc.UploadMedia(ctx, a.ID, "demo.png", data)
		require.NoError(t, err)
		assert.Equal(t, []string{key}, result.Media)
	})

	t.Run("Empty file", func(t *testing.T) {
		svc := NewCatalogService(domainmocks.NewAutomationRepositoryMock(t), domainmocks.NewMediaStoreMock(t), validate.New())

		result, err := svc.UploadMedia(ctx, uuid.New(), "demo.png", nil)
		require.Error(t, err)
		assert.Nil(t, result)

		var verrs *validate.Errors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.Fields, "file")
	})

	t.Run("Upload error", func(t *testing.T) {
		mockRepo := domainmocks.NewAutomationRepositoryMock(t)
		mockMedia := domainmocks.NewMediaStoreMock(t)
		svc := NewCatalogService(mockRepo, mockMedia, validate.New())

		a := catalogItem("Lead Bot", []string{"sales"}, 100, 300, 4.0, 2)

		mockRepo.On("GetAutomationByID", mock.Anything, a.ID).Return(a, nil).Once()
		mockMedia.On("Upload", mock.Anything, mock.Anything, "demo.png").Return("", errors.New("s3 down")).Once()

		result, err := svc.UploadMedia(ctx, a.ID, "demo.png", []byte("x"))
		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("Attach error removes uploaded object", func(t *testing.T) {
		mockRepo := domainmocks.NewAutomationRepositoryMock(t)
		mockMedia := domainmocks.NewMediaStoreMock(t)
		svc := NewCatalogService(mockRepo, mockMedia, validate.New())

		a := catalogItem("Lead Bot", []string{"sales"}, 100, 300, 4.0, 2)
		key := "automations/orphan.png"

		mockRepo.On("GetAutomationByID", mock.Anything, a.ID).Return(a, nil).Once()
		mockMedia.On("Upload", mock.Anything, mock.Anything, "demo.png").Return(key, nil).Once()
		mockRepo.On("AppendMedia", mock.Anything, a.ID, key).Return(domain.ErrAutomationNotFound).Once()
		mockMedia.On("Remove", mock.Anything, key).Return(nil).Once()

		result, err := svc.UploadMedia(ctx, a.ID, "demo.png", []byte("x"))
		assert.ErrorIs(t, err, domain.ErrAutomationNotFound)
		assert.Nil(t, result)
	})
}
