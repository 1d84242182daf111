package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/jonathan/resume-matcher/internal/types"
)

const sampleResume = `Sam Lee
sam@example.com | (555) 123-4567

Experience
Software Engineer, Acme Corp
2020 - Present
- Built Go services handling 2M requests per day
- Reduced deploy time by 40% with Docker

Skills
Go, Docker, PostgreSQL
`

const sampleJob = `Senior Backend Engineer
Company: Globex

Requirements
- Go
- Kafka
- Docker
`

const sampleDraft = `{
  "summary": "Backend engineer shipping Go services.",
  "tailored_resume": {
    "name": "Sam Lee",
    "skills": [{"category": "Languages", "items": ["Go", "Docker"]}],
    "experience": [{
      "title": "Software Engineer",
      "company": "Acme Corp",
      "bullets": ["Built Go services handling 2M requests per day"]
    }]
  },
  "keyword_checklist": [{"keyword": "Go", "found": false}]
}`

// isolateEnv keeps the developer's environment out of the command under test
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GEMINI_API_KEY", "JWT_SECRET", "PORT",
		config.EnvPrefix + "_API_KEY", config.EnvPrefix + "_JWT_SECRET", config.EnvPrefix + "_PORT",
	} {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestParseCommand_Resume(t *testing.T) {
	resume := writeFile(t, "resume.txt", sampleResume)

	out, err := execute(t, "parse", "--resume", resume, "--json")
	require.NoError(t, err, out)

	var profile types.CandidateProfile
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	assert.Equal(t, "Sam Lee", profile.Name)
	assert.Contains(t, profile.Skills, "Docker")
}

func TestParseCommand_JobToFile(t *testing.T) {
	job := writeFile(t, "job.txt", sampleJob)
	outFile := filepath.Join(t.TempDir(), "job.json")

	out, err := execute(t, "parse", "--job", job, "--out", outFile)
	require.NoError(t, err, out)
	assert.Contains(t, out, outFile)

	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var profile types.JobProfile
	require.NoError(t, json.Unmarshal(raw, &profile))
	assert.Equal(t, "Globex", profile.Company)
}

func TestParseCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{name: "no input", args: []string{"parse"}, errorString: "exactly one of"},
		{name: "both inputs", args: []string{"parse", "--resume", "a.txt", "--job", "b.txt"}, errorString: "exactly one of"},
		{name: "missing file", args: []string{"parse", "--resume", filepath.Join(os.TempDir(), "nope-resume.txt")}, errorString: "file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestQuickScoreCommand(t *testing.T) {
	resume := writeFile(t, "resume.txt", sampleResume)
	job := writeFile(t, "job.txt", sampleJob)

	out, err := execute(t, "quick-score", "--resume", resume, "--job", job, "--json")
	require.NoError(t, err, out)

	var result types.QuickScoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Contains(t, result.Matched, "docker")
	assert.NotEmpty(t, result.Label)
}

func TestScoreCommand_ManyJobs(t *testing.T) {
	resume := writeFile(t, "resume.txt", sampleResume)
	job := writeFile(t, "job.txt", sampleJob)

	out, err := execute(t, "score", "--resume", resume, "--job", job, "--job", job, "--json")
	require.NoError(t, err, out)

	var results []pipeline.ScoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, results[0].Result, results[1].Result)
}

func TestScoreCommand_Report(t *testing.T) {
	resume := writeFile(t, "resume.txt", sampleResume)
	job := writeFile(t, "job.txt", sampleJob)

	out, err := execute(t, "score", "--resume", resume, "--job", job)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Globex")
}

func TestScoreCommand_NoJobs(t *testing.T) {
	resume := writeFile(t, "resume.txt", sampleResume)

	_, err := execute(t, "score", "--resume", resume)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--job")
}

func TestTailorCommand_WithDraft(t *testing.T) {
	resume := writeFile(t, "resume.txt", sampleResume)
	job := writeFile(t, "job.txt", sampleJob)
	draft := writeFile(t, "draft.json", sampleDraft)

	out, err := execute(t, "tailor", "--resume", resume, "--job", job, "--draft", draft, "--json")
	require.NoError(t, err, out)

	var result pipeline.TailorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotNil(t, result.Draft)
	assert.Equal(t, "Sam Lee", result.Draft.TailoredResume.Name)
	assert.NotNil(t, result.Issues)
}

func TestTailorCommand_NoGenerator(t *testing.T) {
	resume := writeFile(t, "resume.txt", sampleResume)
	job := writeFile(t, "job.txt", sampleJob)

	_, err := execute(t, "tailor", "--resume", resume, "--job", job)
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrNoGenerator)
}

func TestTailorCommand_InvalidDraft(t *testing.T) {
	resume := writeFile(t, "resume.txt", sampleResume)
	job := writeFile(t, "job.txt", sampleJob)
	draft := writeFile(t, "draft.json", `{"tailored_resume": {"skills": [{"category": 3}]}}`)

	_, err := execute(t, "tailor", "--resume", resume, "--job", job, "--draft", draft)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestTokenCommand(t *testing.T) {
	secret := "a-secret-that-is-long-enough"
	cfgFile := writeFile(t, "config.yaml", "jwt_secret: "+secret+"\n")

	out, err := execute(t, "--config", cfgFile, "token", "--subject", "ci-bot")
	require.NoError(t, err, out)

	token := string(bytes.TrimSpace([]byte(out)))
	subject, err := server.NewJWTVerifier(&config.JWTConfig{Secret: secret}).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ci-bot", subject)
}

func TestTokenCommand_NoSecret(t *testing.T) {
	_, err := execute(t, "token", "--subject", "ci-bot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestRootCommand_MissingConfig(t *testing.T) {
	resume := writeFile(t, "resume.txt", sampleResume)

	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "parse", "--resume", resume)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}
