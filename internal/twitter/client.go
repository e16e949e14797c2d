package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/ninedttt/gamemaker-bot/internal/apperror"
	"github.com/ninedttt/gamemaker-bot/internal/entity"
)

const defaultBaseURL = "https://api.twitter.com"

var ErrNotAuthenticated = errors.New("client is not authenticated")

// Client is a thin platform API client: fetch mentions, resolve authors,
// post replies. It carries no game logic at all.
type Client struct {
	baseURL string
	token   string
	http    *fasthttp.Client

	defaultTimeout time.Duration

	accountID string
}

type Option func(*Client)

func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:        defaultBaseURL,
		token:          token,
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second},
		defaultTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type tweet struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	AuthorID       string `json:"author_id"`
	ConversationID string `json:"conversation_id"`
	CreatedAt      string `json:"created_at"`
}

type mentionsResponse struct {
	Data     []tweet `json:"data"`
	Includes struct {
		Users []User `json:"users"`
	} `json:"includes"`
}

type userResponse struct {
	Data User `json:"data"`
}

type createTweetRequest struct {
	Text  string `json:"text"`
	Reply struct {
		InReplyToTweetID string `json:"in_reply_to_tweet_id"`
	} `json:"reply"`
}

type createTweetResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Me resolves the authenticated account and pins it as the mention target.
func (that *Client) Me(ctx context.Context) (*User, error) {
	var resp userResponse
	if err := that.doJSON(ctx, fasthttp.MethodGet, "/2/users/me", nil, &resp); err != nil {
		return nil, err
	}

	that.accountID = resp.Data.ID

	return &resp.Data, nil
}

// Mentions fetches mentions of the authenticated account newer than
// sinceID, in the order the feed returns them. Author display names from
// the batch's included-users table are filled in where present.
func (that *Client) Mentions(ctx context.Context, sinceID string, limit int) ([]entity.Mention, error) {
	if that.accountID == "" {
		return nil, ErrNotAuthenticated
	}

	query := url.Values{}
	query.Set("max_results", strconv.Itoa(limit))
	query.Set("tweet.fields", "conversation_id,created_at,author_id")
	query.Set("expansions", "author_id")
	query.Set("user.fields", "username")
	if sinceID != "" {
		query.Set("since_id", sinceID)
	}

	path := fmt.Sprintf("/2/users/%s/mentions?%s", that.accountID, query.Encode())

	var resp mentionsResponse
	if err := that.doJSON(ctx, fasthttp.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	authors := make(map[string]string, len(resp.Includes.Users))
	for _, user := range resp.Includes.Users {
		authors[user.ID] = user.Username
	}

	mentions := make([]entity.Mention, 0, len(resp.Data))
	for _, t := range resp.Data {
		mentions = append(mentions, entity.Mention{
			ID:             t.ID,
			ConversationID: t.ConversationID,
			AuthorID:       t.AuthorID,
			AuthorName:     authors[t.AuthorID],
			Text:           t.Text,
			CreatedAt:      t.CreatedAt,
		})
	}

	return mentions, nil
}

// ResolveAuthor is the fallback lookup for authors missing from a batch's
// side table.
func (that *Client) ResolveAuthor(ctx context.Context, authorID string) (string, error) {
	var resp userResponse
	if err := that.doJSON(ctx, fasthttp.MethodGet, "/2/users/"+authorID, nil, &resp); err != nil {
		return "", err
	}
	return resp.Data.Username, nil
}

// PostReply posts text in reply to the given message and returns the new
// message's id. The caller is responsible for the length cap.
func (that *Client) PostReply(ctx context.Context, inReplyTo, text string) (string, error) {
	req := createTweetRequest{Text: text}
	req.Reply.InReplyToTweetID = inReplyTo

	var resp createTweetResponse
	if err := that.doJSON(ctx, fasthttp.MethodPost, "/2/tweets", req, &resp); err != nil {
		return "", err
	}

	return resp.Data.ID, nil
}

func (that *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(that.baseURL + path)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+that.token)

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("could not marshal request: %w", err)
		}
		req.SetBody(payload)
	}

	if err := that.http.DoDeadline(req, resp, that.computeDeadline(ctx)); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	status := resp.StatusCode()
	if status == fasthttp.StatusTooManyRequests {
		return fmt.Errorf("%w: status %d", apperror.ErrRateLimited, status)
	}
	if status == fasthttp.StatusNotFound {
		return fmt.Errorf("%w: %s", apperror.ErrNotFound, path)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("platform api error: status=%d body=%s", status, truncate(string(resp.Body()), 512))
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("could not decode response: %w", err)
		}
	}

	return nil
}

func (that *Client) computeDeadline(ctx context.Context) time.Time {
	clientDeadline := time.Now().Add(that.defaultTimeout)
	if deadline, ok := ctx.Deadline(); ok && deadline.Before(clientDeadline) {
		return deadline
	}
	return clientDeadline
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
