package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/5b1f", PlatformAshby},
		{"https://jobs.smartrecruiters.com/Acme/7436", PlatformSmartRecruiters},
		{"https://BOARDS.GREENHOUSE.IO:443/acme", PlatformGreenhouse},
		{"https://greenhouse.io.example.com/jobs", PlatformUnknown},
		{"https://notlever.co/jobs", PlatformUnknown},
		{"https://example.com/jobs", PlatformUnknown},
		{"::not a url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Equal(t, ".job__description.body", PlatformContentSelectors(PlatformGreenhouse)[0])
	assert.Contains(t, PlatformContentSelectors(PlatformAshby), "[class*='descriptionText']")
	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))

	// callers may modify the returned slice
	sel := PlatformContentSelectors(PlatformLever)
	sel[0] = "changed"
	assert.Equal(t, ".posting-page", PlatformContentSelectors(PlatformLever)[0])
}

func TestPlatformNoiseSelectors(t *testing.T) {
	common := PlatformNoiseSelectors(PlatformUnknown)
	assert.Contains(t, common, "form")
	assert.Contains(t, common, ".cookie-banner")

	greenhouse := PlatformNoiseSelectors(PlatformGreenhouse)
	assert.Contains(t, greenhouse, "form")
	assert.Contains(t, greenhouse, ".voluntary-self-id")
	assert.Greater(t, len(greenhouse), len(common))

	// Ashby adds nothing of its own
	assert.Equal(t, common, PlatformNoiseSelectors(PlatformAshby))
}
