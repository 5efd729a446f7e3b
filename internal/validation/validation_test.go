package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarins/campaigns-backend/internal/model"
)

func rfc3339(t time.Time) string {
	return t.Format(time.RFC3339)
}

func TestValidateCreateValidPayload(t *testing.T) {
	now := time.Now()
	in := CreateCampaignInput{
		Name:      "Campanha de Teste",
		Category:  "sales",
		StartDate: rfc3339(now.AddDate(0, 0, 1)),
		EndDate:   rfc3339(now.AddDate(0, 0, 2)),
		Status:    "active",
	}

	out, fields := ValidateCreate(in)
	require.Nil(t, fields)
	require.NotNil(t, out)
	assert.Equal(t, "Campanha de Teste", out.Name)
	assert.Equal(t, "sales", out.Category)
	assert.Equal(t, model.StatusActive, out.Status)
	assert.True(t, out.EndDate.After(out.StartDate))
}

func TestValidateCreateDefaultsStatus(t *testing.T) {
	now := time.Now()
	in := CreateCampaignInput{
		Name:      "Sem Status",
		Category:  "marketing",
		StartDate: rfc3339(now.AddDate(0, 0, 1)),
		EndDate:   rfc3339(now.AddDate(0, 0, 2)),
	}

	out, fields := ValidateCreate(in)
	require.Nil(t, fields)
	assert.Equal(t, model.StatusActive, out.Status)
}

func TestValidateCreateFieldRules(t *testing.T) {
	now := time.Now()
	start := rfc3339(now.AddDate(0, 0, 1))
	end := rfc3339(now.AddDate(0, 0, 2))

	tests := []struct {
		name      string
		in        CreateCampaignInput
		wantField string
	}{
		{
			name:      "name too short",
			in:        CreateCampaignInput{Name: "ab", Category: "sales", StartDate: start, EndDate: end},
			wantField: "name",
		},
		{
			name:      "name missing",
			in:        CreateCampaignInput{Category: "sales", StartDate: start, EndDate: end},
			wantField: "name",
		},
		{
			name:      "category outside the enum",
			in:        CreateCampaignInput{Name: "Valid Name", Category: "finance", StartDate: start, EndDate: end},
			wantField: "category",
		},
		{
			name:      "startDate not a date",
			in:        CreateCampaignInput{Name: "Valid Name", Category: "sales", StartDate: "tomorrow", EndDate: end},
			wantField: "startDate",
		},
		{
			name:      "endDate not a date",
			in:        CreateCampaignInput{Name: "Valid Name", Category: "sales", StartDate: start, EndDate: "2025-13-45"},
			wantField: "endDate",
		},
		{
			name:      "status outside the enum",
			in:        CreateCampaignInput{Name: "Valid Name", Category: "sales", StartDate: start, EndDate: end, Status: "archived"},
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, fields := ValidateCreate(tt.in)
			assert.Nil(t, out)
			require.NotNil(t, fields)
			assert.NotEmpty(t, fields[tt.wantField])
		})
	}
}

func TestValidateCreateEndDateMustFollowStartDate(t *testing.T) {
	now := time.Now()
	in := CreateCampaignInput{
		Name:      "Datas Invertidas",
		Category:  "events",
		StartDate: rfc3339(now.AddDate(0, 0, 5)),
		EndDate:   rfc3339(now.AddDate(0, 0, 5)), // equal is also rejected
	}

	out, fields := ValidateCreate(in)
	assert.Nil(t, out)
	require.NotNil(t, fields)
	assert.NotEmpty(t, fields["endDate"])
}

func TestValidateCreateStartDateBeforeToday(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.Local)
	in := CreateCampaignInput{
		Name:      "Campanha Atrasada",
		Category:  "other",
		StartDate: rfc3339(now.AddDate(0, 0, -1)),
		EndDate:   rfc3339(now.AddDate(0, 0, 10)),
	}

	out, fields := validateCreateAt(in, now)
	assert.Nil(t, out)
	require.NotNil(t, fields)
	assert.NotEmpty(t, fields["startDate"])
}

func TestValidateCreateStartDateEarlierSameDay(t *testing.T) {
	// Midnight of the current day is allowed even when the clock has moved on.
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.Local)
	in := CreateCampaignInput{
		Name:      "Campanha de Hoje",
		Category:  "marketing",
		StartDate: rfc3339(time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)),
		EndDate:   rfc3339(now.AddDate(0, 0, 10)),
	}

	out, fields := validateCreateAt(in, now)
	assert.Nil(t, fields)
	assert.NotNil(t, out)
}

func TestValidateUpdateAllFieldsOptional(t *testing.T) {
	out, fields := ValidateUpdate(UpdateCampaignInput{})
	require.Nil(t, fields)
	assert.Nil(t, out.Name)
	assert.Nil(t, out.Category)
	assert.Nil(t, out.StartDate)
	assert.Nil(t, out.EndDate)
	assert.Nil(t, out.Status)
}

func TestValidateUpdatePartialFields(t *testing.T) {
	name := "Atualizada"
	status := "paused"
	out, fields := ValidateUpdate(UpdateCampaignInput{Name: &name, Status: &status})
	require.Nil(t, fields)
	require.NotNil(t, out.Name)
	assert.Equal(t, "Atualizada", *out.Name)
	require.NotNil(t, out.Status)
	assert.Equal(t, model.StatusPaused, *out.Status)
}

func TestValidateUpdateBothDatesOutOfOrder(t *testing.T) {
	now := time.Now()
	start := rfc3339(now.AddDate(0, 0, 10))
	end := rfc3339(now.AddDate(0, 0, 5))

	out, fields := ValidateUpdate(UpdateCampaignInput{StartDate: &start, EndDate: &end})
	assert.Nil(t, out)
	require.NotNil(t, fields)
	assert.NotEmpty(t, fields["endDate"])
}

func TestValidateUpdateSingleDateSkipsCrossCheck(t *testing.T) {
	// With only one date present the ordering check needs the stored record;
	// that happens in the service after the merge.
	end := rfc3339(time.Now().AddDate(0, 0, 5))
	out, fields := ValidateUpdate(UpdateCampaignInput{EndDate: &end})
	require.Nil(t, fields)
	require.NotNil(t, out.EndDate)
	assert.Nil(t, out.StartDate)
}

func TestValidateUpdateRejectsBadValues(t *testing.T) {
	short := "ab"
	badCat := "finance"
	badDate := "soon"

	out, fields := ValidateUpdate(UpdateCampaignInput{Name: &short, Category: &badCat, StartDate: &badDate})
	assert.Nil(t, out)
	require.NotNil(t, fields)
	assert.NotEmpty(t, fields["name"])
	assert.NotEmpty(t, fields["category"])
	assert.NotEmpty(t, fields["startDate"])
}
