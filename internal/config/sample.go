package config

// SampleConfig returns a documented configuration file with every option
func SampleConfig() string {
	return `# Synopsis configuration
version: "1.0"

# Summarization service
server:
  # Root URL; /summarize and /demo are requested below it
  base_url: "http://localhost:5000"
  # Summarization of long articles can take a while
  timeout: 120s
  user_agent: "synopsis"

# Loading articles from files, stdin and URLs
article:
  # Larger inputs are rejected (bytes)
  max_bytes: 2097152
  fetch_timeout: 30s

# Output of the summarize and demo commands
output:
  # text, json or markdown
  default_format: text
  # auto, always or never
  color_mode: auto
  verbose: false

# Terminal UI
ui:
  # default, high-contrast or minimal
  theme: default
  # 0 wraps summaries to the window width
  wrap_width: 0

# Diagnostics are written here while the TUI is running
log:
  file: "~/.cache/synopsis/synopsis.log"
`
}

// MinimalSampleConfig returns a configuration file with only the essentials
func MinimalSampleConfig() string {
	return `version: "1.0"
server:
  base_url: "http://localhost:5000"
output:
  default_format: text
`
}
