package service

import (
	"errors"
	"net/http"

	"career-coach-go/internal/fetcher"
	"career-coach-go/internal/model"
)

// 固定的错误提示
const (
	MsgUsernameRequired    = "Username is required"
	MsgGitHubUserNotFound  = "GitHub user not found"
	MsgGitHubRateLimited   = "GitHub API rate limit exceeded. Please try again later."
	MsgNoRepositories      = "No repositories found for this user"
	MsgGitHubFailed        = "Failed to analyze GitHub profile"
	MsgLinkedInURLRequired = "LinkedIn URL is required"
	MsgLinkedInInvalidURL  = "Invalid LinkedIn profile URL"
	MsgLinkedInAuth        = "LinkedIn requires authentication to view this profile"
	MsgLinkedInBlocked     = "LinkedIn blocked the request. Please try again later."
	MsgLinkedInFailed      = "Failed to scrape LinkedIn profile"
)

// ClassifyGitHubError 把GitHub分析错误映射为HTTP状态码和提示
func ClassifyGitHubError(err error) *model.PlatformError {
	switch {
	case errors.Is(err, fetcher.ErrUserNotFound):
		return &model.PlatformError{Status: http.StatusNotFound, Error: MsgGitHubUserNotFound}
	case errors.Is(err, ErrNoRepositories):
		return &model.PlatformError{Status: http.StatusNotFound, Error: MsgNoRepositories}
	case errors.Is(err, fetcher.ErrRateLimited):
		return &model.PlatformError{Status: http.StatusTooManyRequests, Error: MsgGitHubRateLimited}
	default:
		return &model.PlatformError{Status: http.StatusInternalServerError, Error: MsgGitHubFailed, Details: errString(err)}
	}
}

// ClassifyLinkedInError 把LinkedIn分析错误映射为HTTP状态码和提示，details带原始错误
func ClassifyLinkedInError(err error) *model.PlatformError {
	switch {
	case errors.Is(err, fetcher.ErrInvalidProfileURL):
		return &model.PlatformError{Status: http.StatusBadRequest, Error: MsgLinkedInInvalidURL, Details: errString(err)}
	case errors.Is(err, fetcher.ErrAuthRequired):
		return &model.PlatformError{Status: http.StatusForbidden, Error: MsgLinkedInAuth, Details: errString(err)}
	case errors.Is(err, fetcher.ErrBlocked):
		return &model.PlatformError{Status: http.StatusForbidden, Error: MsgLinkedInBlocked, Details: errString(err)}
	default:
		return &model.PlatformError{Status: http.StatusInternalServerError, Error: MsgLinkedInFailed, Details: errString(err)}
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
