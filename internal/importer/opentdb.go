package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"quizquest/internal/domain"
	"quizquest/internal/dto"
	"quizquest/internal/logger"
	"quizquest/internal/service"
	"quizquest/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBaseURL = "https://opentdb.com/api.php"
	defaultAmount  = 10
	maxBatchSize   = 50 // OpenTriviaDB caps a single request at 50 questions
)

// RawQuestion mirrors the OpenTriviaDB question payload.
type RawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []RawQuestion `json:"results"`
}

// Client fetches trivia questions from OpenTriviaDB.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an OpenTriviaDB client. A nil httpClient falls back to a
// client with a sane timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// FetchQuestions retrieves amount questions at the given difficulty.
// Difficulty may be empty for a mixed batch.
func (c *Client) FetchQuestions(ctx context.Context, amount int, difficulty domain.Difficulty) ([]RawQuestion, error) {
	if amount <= 0 {
		amount = defaultAmount
	}
	if amount > maxBatchSize {
		amount = maxBatchSize
	}

	params := url.Values{}
	params.Set("amount", strconv.Itoa(amount))
	params.Set("type", "multiple")
	if difficulty != "" {
		params.Set("difficulty", string(difficulty))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, domain.NewInternalError("failed to build opentdb request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewError(domain.CodeFetchFailed,
			fmt.Sprintf("opentdb returned status %d", resp.StatusCode), nil)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.NewError(domain.CodeFetchFailed, "failed to decode opentdb response", err)
	}
	if payload.ResponseCode != 0 {
		return nil, domain.NewError(domain.CodeFetchFailed,
			fmt.Sprintf("opentdb response_code=%d", payload.ResponseCode), nil)
	}
	return payload.Results, nil
}

// Importer turns OpenTriviaDB batches into stored challenges.
type Importer struct {
	client     *Client
	challenges service.ChallengeService
	rng        *rand.Rand
}

// NewImporter creates a new Importer instance.
func NewImporter(client *Client, challenges service.ChallengeService) *Importer {
	return &Importer{
		client:     client,
		challenges: challenges,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ImportChallenges fetches one batch per difficulty concurrently and stores
// each batch as a published challenge. It returns the created challenge ids.
func (imp *Importer) ImportChallenges(ctx context.Context, questionsPer int) ([]string, error) {
	difficulties := []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard}

	batches := make([][]RawQuestion, len(difficulties))
	g, gctx := errgroup.WithContext(ctx)
	for i, diff := range difficulties {
		i, diff := i, diff
		g.Go(func() error {
			raw, err := imp.client.FetchQuestions(gctx, questionsPer, diff)
			if err != nil {
				return err
			}
			batches[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(difficulties))
	for i, diff := range difficulties {
		if len(batches[i]) == 0 {
			logger.Get().Warn("Empty trivia batch, skipping", zap.String("difficulty", string(diff)))
			continue
		}
		id, err := imp.storeBatch(ctx, diff, batches[i])
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (imp *Importer) storeBatch(ctx context.Context, diff domain.Difficulty, raw []RawQuestion) (string, error) {
	questions := make([]domain.Question, 0, len(raw))
	for _, rq := range raw {
		q, ok := imp.convertQuestion(rq)
		if !ok {
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return "", domain.NewInvalidInputError("trivia batch produced no usable questions")
	}

	req := &dto.CreateChallengeRequest{
		Title:       fmt.Sprintf("Trivia Mix (%s)", diff),
		Description: fmt.Sprintf("Imported from OpenTriviaDB on %s", time.Now().Format("2006-01-02")),
		Theme:       "trivia",
		Difficulty:  string(diff),
		Questions:   questions,
	}
	resp, err := imp.challenges.CreateChallenge(ctx, req, domain.Identity{})
	if err != nil {
		return "", err
	}

	logger.Get().Info("Imported trivia challenge",
		zap.String("challenge_id", resp.ID),
		zap.String("difficulty", string(diff)),
		zap.Int("questions", len(questions)))
	return resp.ID, nil
}

// convertQuestion maps a raw trivia question to a single-answer multiple
// choice question. Options are shuffled; the correct index is tracked through
// the shuffle. Payloads arrive HTML-escaped and are decoded here.
func (imp *Importer) convertQuestion(rq RawQuestion) (domain.Question, bool) {
	if rq.Question == "" || rq.CorrectAnswer == "" || len(rq.IncorrectAnswers) == 0 {
		return domain.Question{}, false
	}

	options := make([]string, 0, len(rq.IncorrectAnswers)+1)
	options = append(options, html.UnescapeString(rq.CorrectAnswer))
	for _, wrong := range rq.IncorrectAnswers {
		options = append(options, html.UnescapeString(wrong))
	}

	correct := 0
	imp.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
		switch correct {
		case i:
			correct = j
		case j:
			correct = i
		}
	})

	return domain.Question{
		ID:             util.NewULID(),
		Type:           domain.QuestionMultipleChoice,
		Text:           html.UnescapeString(rq.Question),
		Options:        options,
		CorrectAnswers: []int{correct},
	}, true
}
