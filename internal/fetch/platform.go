package fetch

import (
	"net/url"
	"slices"
	"strings"
)

// Platform is an applicant tracking system that hosts job postings
type Platform string

// Known platforms
const (
	PlatformGreenhouse      Platform = "greenhouse"
	PlatformLever           Platform = "lever"
	PlatformWorkday         Platform = "workday"
	PlatformAshby           Platform = "ashby"
	PlatformSmartRecruiters Platform = "smartrecruiters"
	PlatformUnknown         Platform = "unknown"
)

// board describes where a platform keeps the posting body and what to strip around it
type board struct {
	platform Platform
	domains  []string
	content  []string
	noise    []string
}

var boards = []board{
	{
		platform: PlatformGreenhouse,
		domains:  []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		domains:  []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		domains:  []string{"myworkdayjobs.com", "workday.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".gwt-HTML", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		domains:  []string{"ashbyhq.com"},
		content:  []string{"[class*='descriptionText']", "main"},
	},
	{
		platform: PlatformSmartRecruiters,
		domains:  []string{"smartrecruiters.com"},
		content:  []string{".job-sections", "[itemprop='description']", "main"},
		noise:    []string{".job-apply", ".sticky-apply"},
	},
}

// sharedNoise is removed from every posting: application forms, EEO notices,
// share widgets and cookie banners
var sharedNoise = []string{
	"form", "#application-form", ".application-form", ".application--container",
	".apply-button-container", "[data-testid='application-form']",
	".voluntary-disclosure", ".eeo-statement", ".eeo-section", "[data-testid='eeo']",
	".legal-disclosure", ".self-identification",
	".social-share", ".share-buttons", ".social-links",
	".cookie-banner", ".cookie-consent", ".gdpr-notice",
}

// DetectPlatform identifies the platform from the URL host. Hosts match a
// platform domain exactly or as a subdomain.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	if b, ok := boardFor(host); ok {
		return b.platform
	}
	return PlatformUnknown
}

func boardFor(host string) (board, bool) {
	for _, b := range boards {
		for _, d := range b.domains {
			if host == d || strings.HasSuffix(host, "."+d) {
				return b, true
			}
		}
	}
	return board{}, false
}

func lookupBoard(p Platform) (board, bool) {
	i := slices.IndexFunc(boards, func(b board) bool { return b.platform == p })
	if i < 0 {
		return board{}, false
	}
	return boards[i], true
}

// PlatformContentSelectors returns the selectors that hold the posting body,
// most specific first. Unknown platforms use JobPostingSelectors.
func PlatformContentSelectors(platform Platform) []string {
	b, ok := lookupBoard(platform)
	if !ok {
		return JobPostingSelectors()
	}
	return slices.Clone(b.content)
}

// PlatformNoiseSelectors returns the shared noise selectors plus the platform's own.
func PlatformNoiseSelectors(platform Platform) []string {
	out := slices.Clone(sharedNoise)
	if b, ok := lookupBoard(platform); ok {
		out = append(out, b.noise...)
	}
	return out
}
