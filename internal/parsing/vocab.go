package parsing

import (
	"regexp"
	"strings"
)

// sectionVocabulary holds the canonical section headings. Plural variants are
// derived by matchSectionVocabulary.
var sectionVocabulary = map[string]bool{
	"summary": true, "professional summary": true, "profile": true, "professional profile": true,
	"career summary": true, "objective": true, "career objective": true, "about": true, "about me": true,
	"experience": true, "work experience": true, "professional experience": true, "relevant experience": true,
	"employment": true, "employment history": true, "work history": true, "career history": true,
	"clinical experience": true, "industry experience": true, "positions held": true,
	"education": true, "education and training": true, "academic background": true,
	"qualifications": true, "academic qualifications": true, "training": true,
	"skills": true, "technical skills": true, "core skills": true, "key skills": true,
	"core competencies": true, "competencies": true, "areas of expertise": true, "expertise": true,
	"technologies": true, "tools": true, "skills and tools": true, "tech stack": true,
	"projects": true, "personal projects": true, "selected projects": true, "key projects": true,
	"certifications": true, "certificates": true, "licenses": true, "licenses and certifications": true,
	"awards": true, "honors": true, "achievements": true, "publications": true,
	"languages": true, "interests": true, "hobbies": true, "volunteering": true,
	"volunteer experience": true, "references": true, "contact": true, "links": true,
}

// subheadingDenylist lines never open a section. They sit inside experience blocks.
var subheadingDenylist = map[string]bool{
	"roles and responsibilities": true,
	"key responsibilities":       true,
	"responsibilities":           true,
	"key achievements":           true,
	"achievements include":       true,
	"duties":                     true,
}

// Section label families used when pooling lines out of the segmented text
var (
	experienceFamily = []string{"experience", "employment", "work history", "career history", "positions"}
	educationFamily  = []string{"education", "qualification", "academic", "training"}
	skillsFamily     = []string{"skill", "competenc", "expertise", "technolog", "tools", "tech stack"}
	summaryFamily    = []string{"summary", "profile", "objective", "about"}
	projectsFamily   = []string{"project"}
)

// roleKeywords are words that signal a job title
var roleKeywords = []string{
	"engineer", "developer", "programmer", "architect", "manager", "director", "lead",
	"head", "chief", "officer", "president", "vp", "founder", "co-founder", "owner", "partner",
	"analyst", "scientist", "researcher", "consultant", "specialist", "coordinator",
	"administrator", "assistant", "associate", "intern", "trainee", "apprentice",
	"designer", "technician", "technologist", "pharmacist", "nurse", "physician", "doctor",
	"therapist", "clinician", "surgeon", "teacher", "lecturer", "professor", "tutor",
	"accountant", "auditor", "advisor", "adviser", "representative", "supervisor",
	"editor", "writer", "producer", "recruiter", "executive", "strategist", "sre",
	"cto", "ceo", "cfo", "coo", "cio", "principal", "fellow", "tester", "operator",
}

var roleKeywordPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(quoteAll(roleKeywords), "|") + `)s?\b`)

// HasRoleKeyword reports whether s contains a job-title word
func HasRoleKeyword(s string) bool {
	return roleKeywordPattern.MatchString(s)
}

// danglingWords may not end a bullet; a line ending in one is a hard-wrapped fragment
var danglingWords = map[string]bool{
	"and": true, "or": true, "but": true, "nor": true, "with": true, "to": true, "of": true,
	"for": true, "the": true, "a": true, "an": true, "in": true, "on": true, "at": true,
	"by": true, "from": true, "into": true, "as": true, "including": true, "while": true,
	"which": true, "that": true, "via": true, "across": true, "through": true, "using": true,
}

// IsDanglingWord reports whether a word cannot end a complete bullet
func IsDanglingWord(word string) bool {
	return danglingWords[strings.ToLower(strings.Trim(word, ".,;:!?\"'()"))]
}

// knownSkills is the fallback skill dictionary, in canonical casing
var knownSkills = []string{
	"Go", "Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Ruby", "PHP", "Rust",
	"Kotlin", "Swift", "Scala", "SQL", "NoSQL", "Bash", "Perl", "MATLAB", "Haskell",
	"React", "Angular", "Vue", "Svelte", "Next.js", "Node.js", "Express", "Django", "Flask",
	"FastAPI", "Spring", "Spring Boot", "Rails", ".NET", "ASP.NET", "GraphQL", "REST", "gRPC",
	"HTML", "CSS", "Sass", "Tailwind", "jQuery", "Redux",
	"PostgreSQL", "MySQL", "SQLite", "MongoDB", "Redis", "Cassandra", "DynamoDB", "Elasticsearch",
	"Kafka", "RabbitMQ", "Snowflake", "BigQuery", "Spark", "Hadoop", "Airflow", "dbt",
	"AWS", "GCP", "Azure", "Docker", "Kubernetes", "Terraform", "Ansible", "Jenkins",
	"GitHub Actions", "CI/CD", "Linux", "Git", "Prometheus", "Grafana", "Helm", "Nginx",
	"Pandas", "NumPy", "TensorFlow", "PyTorch", "scikit-learn", "Machine Learning",
	"Deep Learning", "NLP", "Computer Vision", "Data Analysis", "Data Visualization",
	"Tableau", "Power BI", "Excel", "Looker", "Figma", "Sketch", "Jira", "Confluence",
	"Agile", "Scrum", "Kanban", "Microservices", "Distributed Systems", "System Design",
	"Unit Testing", "TDD", "Selenium", "Cypress", "Jest", "Pytest",
	"Salesforce", "SAP", "HubSpot", "SEO", "Google Analytics", "Photoshop", "Illustrator",
	"Project Management", "Stakeholder Management", "Product Management", "Budgeting",
	"Clinical Pharmacy", "Antimicrobial Stewardship", "Medicines Optimisation",
	"Patient Care", "Pharmacovigilance", "Clinical Governance", "Prescribing",
	"Financial Modelling", "Financial Modeling", "Forecasting", "Auditing", "Bookkeeping",
}

// KnownSkills returns a copy of the fallback skill dictionary
func KnownSkills() []string {
	out := make([]string, len(knownSkills))
	copy(out, knownSkills)
	return out
}

// FindKnownSkills scans text for dictionary skills on word boundaries and returns
// them in dictionary order. Two-letter entries ("Go", "C#") match case-sensitively.
func FindKnownSkills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, skill := range knownSkills {
		if len(skill) <= 2 {
			if IndexPhrase(text, skill) >= 0 {
				found = append(found, skill)
			}
			continue
		}
		if IndexPhrase(lower, strings.ToLower(skill)) >= 0 {
			found = append(found, skill)
		}
	}
	return found
}

// softSkills is the vocabulary used for soft-skill signal detection
var softSkills = []string{
	"communication", "leadership", "collaboration", "teamwork", "mentoring", "mentored",
	"coaching", "stakeholder", "problem solving", "problem-solving", "ownership",
	"adaptability", "initiative", "presentation", "negotiation", "cross-functional",
	"organisation", "organization", "time management", "critical thinking", "empathy",
	"conflict resolution", "decision making", "decision-making", "attention to detail",
	"customer service", "facilitation", "influencing", "prioritisation", "prioritization",
}

// SoftSkills returns a copy of the soft-skill vocabulary
func SoftSkills() []string {
	out := make([]string, len(softSkills))
	copy(out, softSkills)
	return out
}

// stopwords are ignored by token-overlap scoring
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "you": true, "your": true, "our": true,
	"are": true, "will": true, "this": true, "that": true, "from": true, "have": true, "has": true,
	"not": true, "but": true, "all": true, "can": true, "who": true, "what": true, "into": true,
	"about": true, "their": true, "they": true, "them": true, "was": true, "were": true,
	"been": true, "being": true, "its": true, "any": true, "also": true, "more": true, "most": true,
	"other": true, "such": true, "than": true, "then": true, "these": true, "those": true,
	"very": true, "via": true, "per": true, "etc": true, "how": true, "why": true, "when": true,
	"where": true, "which": true, "while": true, "within": true, "across": true, "over": true,
	"under": true, "using": true, "use": true, "able": true, "ability": true, "must": true,
	"should": true, "would": true, "could": true, "may": true, "might": true, "plus": true,
	"required": true, "requirements": true, "requirement": true, "require": true,
	"preferred": true, "desired": true, "nice": true, "bonus": true, "qualifications": true,
	"responsibilities": true, "responsible": true, "including": true, "include": true,
	"experience": true, "experienced": true, "years": true, "year": true, "work": true,
	"working": true, "job": true, "role": true, "team": true, "teams": true, "company": true,
	"candidate": true, "ideal": true, "looking": true, "join": true, "opportunity": true,
	"strong": true, "good": true, "great": true, "excellent": true, "knowledge": true,
	"understanding": true, "familiarity": true, "skills": true, "skill": true, "well": true,
	"like": true, "help": true, "new": true, "make": true, "own": true, "one": true,
	"two": true, "three": true, "five": true, "least": true, "minimum": true,
}

// IsStopword reports whether token is too generic to count toward overlap
func IsStopword(token string) bool {
	return stopwords[token]
}

// regionVocabulary is the fixed set of regions accepted after "City, "
var regionVocabulary = []string{
	// US states
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA", "HI", "ID", "IL", "IN", "IA",
	"KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT",
	"VA", "WA", "WV", "WI", "WY", "DC",
	// Canada
	"ON", "QC", "BC", "AB", "MB", "SK", "NS", "NB", "NL", "PE",
	// Australia
	"NSW", "VIC", "QLD", "TAS", "ACT", "NT",
	// Countries and nations
	"UK", "United Kingdom", "England", "Scotland", "Wales", "Northern Ireland", "Ireland",
	"USA", "US", "United States", "Canada", "Australia", "New Zealand", "NZ", "India",
	"Germany", "France", "Netherlands", "Spain", "Singapore", "UAE",
}

func quoteAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = regexp.QuoteMeta(w)
	}
	return out
}

func labelInFamily(label string, family []string) bool {
	for _, term := range family {
		if strings.Contains(label, term) {
			return true
		}
	}
	return false
}
