package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type LinkedIn struct {
	ClientID         string
	ClientSecret     string
	RedirectURI      string
	LocalRedirectURI string
	Scopes           []string
	OAuthURL         string
	APIURL           string
	AccessToken      string
	PersonURN        string
	TokenFile        string
	ProfileFile      string
	LogFile          string
}

type Instagram struct {
	AccessToken     string
	AccountID       string
	GraphURL        string
	DefaultImageURL string
	LogFile         string
}

type GitHub struct {
	Token           string
	APIURL          string
	WikiRepo        string
	DiscussionsRepo string
	ChallengesDir   string
	DiscussionDelay time.Duration
	ResultsFile     string
	URLsFile        string
	PagesRepo       string
	PagesBranch     string
	PagesPath       string
}

type Config struct {
	LinkedIn           LinkedIn
	Instagram          Instagram
	GitHub             GitHub
	R2                 R2
	PostsDir           string
	PublishDelay       time.Duration
	SecretKey          string
	OAuthServerPort    int
	ScheduleCron       string
	TokenExpiryWarning time.Duration
	LogLevel           string
}

func LoadConfig() *Config {
	return &Config{
		LinkedIn: LinkedIn{
			ClientID:         getEnv("LINKEDIN_CLIENT_ID", ""),
			ClientSecret:     getEnv("LINKEDIN_CLIENT_SECRET", ""),
			RedirectURI:      getEnv("LINKEDIN_REDIRECT_URI", "https://rsham004.github.io/aibuilders-landing/linkedin-oauth.html"),
			LocalRedirectURI: getEnv("LINKEDIN_LOCAL_REDIRECT_URI", "http://localhost:3000/callback"),
			Scopes:           getEnvList("LINKEDIN_SCOPES", []string{"openid", "profile", "w_member_social"}),
			OAuthURL:         getEnv("LINKEDIN_OAUTH_URL", "https://www.linkedin.com/oauth/v2"),
			APIURL:           getEnv("LINKEDIN_API_URL", "https://api.linkedin.com"),
			AccessToken:      getEnv("LINKEDIN_ACCESS_TOKEN", ""),
			PersonURN:        getEnv("LINKEDIN_PERSON_URN", ""),
			TokenFile:        getEnv("TOKEN_FILE", "linkedin-tokens.json"),
			ProfileFile:      getEnv("PROFILE_FILE", "linkedin-profile.json"),
			LogFile:          getEnv("LINKEDIN_LOG_FILE", "linkedin-posting-log.json"),
		},
		Instagram: Instagram{
			AccessToken:     getEnv("INSTAGRAM_ACCESS_TOKEN", ""),
			AccountID:       getEnv("INSTAGRAM_ACCOUNT_ID", ""),
			GraphURL:        getEnv("INSTAGRAM_GRAPH_URL", "https://graph.instagram.com/v21.0"),
			DefaultImageURL: getEnv("INSTAGRAM_DEFAULT_IMAGE_URL", ""),
			LogFile:         getEnv("INSTAGRAM_LOG_FILE", "instagram-posting-log.json"),
		},
		GitHub: GitHub{
			Token:           getEnv("GITHUB_TOKEN", ""),
			APIURL:          getEnv("GITHUB_API_URL", ""),
			WikiRepo:        getEnv("WIKI_REPO", "AI-Product-Development/wiki"),
			DiscussionsRepo: getEnv("DISCUSSIONS_REPO", "AI-Product-Development/aibuilders"),
			ChallengesDir:   getEnv("CHALLENGES_DIR", "challenges"),
			DiscussionDelay: getEnvDuration("DISCUSSION_DELAY", 2*time.Second),
			ResultsFile:     getEnv("DISCUSSIONS_RESULTS_FILE", "aibuilders-discussions-results.json"),
			URLsFile:        getEnv("DISCUSSIONS_URLS_FILE", "created-discussions.txt"),
			PagesRepo:       getEnv("PAGES_REPO", "rsham004/aibuilders-landing"),
			PagesBranch:     getEnv("PAGES_BRANCH", "master"),
			PagesPath:       getEnv("PAGES_PATH", "/"),
		},
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		PostsDir:           getEnv("POSTS_DIR", "marketing/posts"),
		PublishDelay:       getEnvDuration("PUBLISH_DELAY", 5*time.Second),
		SecretKey:          getEnv("SECRET_KEY", ""),
		OAuthServerPort:    getEnvInt("OAUTH_SERVER_PORT", 3000),
		ScheduleCron:       getEnv("SCHEDULE_CRON", "0 0 9 * * *"),
		TokenExpiryWarning: getEnvDuration("TOKEN_EXPIRY_WARNING", 7*24*time.Hour),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvList splits on commas and whitespace, so both "a,b" and "a b" work.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return defaultValue
	}
	return fields
}

// SplitRepo splits "owner/name" into its parts.
func SplitRepo(full string) (owner, name string, ok bool) {
	owner, name, ok = strings.Cut(full, "/")
	if !ok || owner == "" || name == "" {
		return "", "", false
	}
	return owner, name, true
}
