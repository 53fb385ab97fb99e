package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantCount int
		wantKind  ErrorKind
	}{
		{
			name:      "single day",
			start:     "2025-01-03",
			end:       "2025-01-03",
			wantCount: 1,
		},
		{
			name:      "three days",
			start:     "2025-01-01",
			end:       "2025-01-03",
			wantCount: 3,
		},
		{
			name:      "month boundary",
			start:     "2025-01-30",
			end:       "2025-02-02",
			wantCount: 4,
		},
		{
			name:      "full year span",
			start:     "2024-01-01",
			end:       "2024-12-31",
			wantCount: 366, // 2024 is a leap year
		},
		{
			name:     "inverted range",
			start:    "2025-01-10",
			end:      "2025-01-03",
			wantKind: KindInvalidRange,
		},
		{
			name:     "span over a year",
			start:    "2024-01-01",
			end:      "2025-06-01",
			wantKind: KindInvalidRange,
		},
		{
			name:     "bad start format",
			start:    "2025/01/03",
			end:      "2025-01-05",
			wantKind: KindInvalidFormat,
		},
		{
			name:     "bad end format",
			start:    "2025-01-03",
			end:      "05-01-2025",
			wantKind: KindInvalidFormat,
		},
		{
			name:     "not a date",
			start:    "hoy",
			end:      "2025-01-05",
			wantKind: KindInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates, err := Generate(tt.start, tt.end)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, KindOf(err))
				assert.Nil(t, dates, "no partial sequence on failure")
				return
			}

			require.NoError(t, err)
			require.Len(t, dates, tt.wantCount)

			first, _ := time.Parse(Layout, tt.start)
			last, _ := time.Parse(Layout, tt.end)
			assert.True(t, dates[0].Equal(first), "first date must be the start")
			assert.True(t, dates[len(dates)-1].Equal(last), "last date must be the end")

			for i := 1; i < len(dates); i++ {
				assert.Equal(t, dates[i-1].AddDate(0, 0, 1), dates[i],
					"dates must be strictly increasing by one day")
			}
		})
	}
}

func TestGenerateCountMatchesSpan(t *testing.T) {
	start := "2025-03-01"
	end := "2025-03-19"
	dates, err := Generate(start, end)
	require.NoError(t, err)

	from, _ := time.Parse(Layout, start)
	to, _ := time.Parse(Layout, end)
	assert.Len(t, dates, int(to.Sub(from).Hours()/24)+1)
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(assert.AnError))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}
