package crop

import (
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCrop() *Crop {
	c := New(uuid.New())
	c.Season = SeasonKharif
	c.CropName = "Groundnut"
	c.Area = 2.5
	c.Year = 2024
	return c
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	c := New(uuid.New())
	assert.Equal(t, DefaultEmoji, c.CropEmoji)
	assert.Equal(t, AreaBigha, c.AreaUnit)
	assert.Equal(t, StatusActive, c.Status)
	assert.NotEqual(t, uuid.Nil, c.ID)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	c := validCrop()
	c.Year = 0
	c.CropName = "  Cotton  "
	c.CropEmoji = ""
	c.Normalize(now)
	assert.Equal(t, "Cotton", c.CropName)
	assert.Equal(t, DefaultEmoji, c.CropEmoji)
	assert.Equal(t, 2025, c.Year)

	sown := time.Date(2023, 7, 10, 0, 0, 0, 0, time.UTC)
	c = validCrop()
	c.Year = 0
	c.SowingDate = &sown
	c.Normalize(now)
	assert.Equal(t, 2023, c.Year, "year follows the sowing date")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(c *Crop)
		field  string
	}{
		{name: "valid", mutate: func(*Crop) {}},
		{name: "bad season", mutate: func(c *Crop) { c.Season = "Monsoon" }, field: "season"},
		{name: "missing name", mutate: func(c *Crop) { c.CropName = "" }, field: "cropName"},
		{name: "long name", mutate: func(c *Crop) { c.CropName = strings.Repeat("a", 101) }, field: "cropName"},
		{name: "zero area", mutate: func(c *Crop) { c.Area = 0 }, field: "area"},
		{name: "bad unit", mutate: func(c *Crop) { c.AreaUnit = "Gunta" }, field: "areaUnit"},
		{name: "bad status", mutate: func(c *Crop) { c.Status = "Sold" }, field: "status"},
		{name: "long notes", mutate: func(c *Crop) { c.Notes = strings.Repeat("n", 501) }, field: "notes"},
		{name: "no owner", mutate: func(c *Crop) { c.UserID = uuid.Nil }, field: "userId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := validCrop()
			tt.mutate(c)
			err := c.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrValidation)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestSetStatus(t *testing.T) {
	t.Parallel()

	c := validCrop()
	require.NoError(t, c.SetStatus(StatusClosed))
	assert.Equal(t, StatusClosed, c.Status)

	// Transitions are not restricted.
	require.NoError(t, c.SetStatus(StatusActive))
	assert.Equal(t, StatusActive, c.Status)

	assert.ErrorIs(t, c.SetStatus("Archived"), domain.ErrValidation)
	assert.Equal(t, StatusActive, c.Status)
}

func TestMarkHarvested(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 11, 5, 10, 0, 0, 0, time.UTC)
	c := validCrop()
	c.MarkHarvested(nil, now)
	assert.Equal(t, StatusHarvested, c.Status)
	require.NotNil(t, c.HarvestDate)
	assert.True(t, c.HarvestDate.Equal(now))

	at := time.Date(2024, 10, 30, 0, 0, 0, 0, time.UTC)
	c.MarkHarvested(&at, now)
	assert.True(t, c.HarvestDate.Equal(at))
}
