//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type optimizeRequest struct {
	Problem  json.RawMessage `json:"problem"`
	Solution json.RawMessage `json:"solution"`
	Seed     int64           `json:"seed"`
	Steps    int             `json:"steps"`
}

type optimizeResult struct {
	Score    int64           `json:"score"`
	Valid    bool            `json:"valid"`
	Seed     int64           `json:"seed,omitempty"`
	TimeMs   int64           `json:"timeMs,omitempty"`
	Solution json.RawMessage `json:"solution,omitempty"`
}

// handler scores the posted solution, or searches one when none is posted.
func handler(_ context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	var req optimizeRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return errResp(400, "invalid JSON: "+err.Error())
	}
	if len(req.Problem) == 0 {
		return errResp(400, "missing problem field")
	}
	p, err := parseProblem(string(req.Problem))
	if err != nil {
		return errResp(422, err.Error())
	}

	if len(req.Solution) > 0 {
		pl, err := parseSolution(string(req.Solution), p.NumMusicians())
		if err != nil {
			return errResp(422, err.Error())
		}
		score, err := Score(p, pl)
		if err != nil {
			return errResp(422, err.Error())
		}
		return okResp(optimizeResult{Score: score, Valid: Valid(p.Stage, pl)})
	}

	cfg := DefaultConfig()
	cfg.Seed = req.Seed
	if req.Steps > 0 {
		cfg.StepCount = req.Steps
	}
	opt, err := NewOptimizer(p, cfg)
	if err != nil {
		return errResp(422, err.Error())
	}
	res, err := opt.Optimize()
	if err != nil {
		code := 500
		if errors.Is(err, ErrCoincidentPoints) || errors.Is(err, ErrCoincidentMusicians) {
			code = 422
		}
		return errResp(code, err.Error())
	}
	sol, err := encodeSolution(res.Placement)
	if err != nil {
		return errResp(500, err.Error())
	}
	return okResp(optimizeResult{
		Score:    res.Score,
		Valid:    res.Valid,
		Seed:     res.Seed,
		TimeMs:   res.Elapsed.Milliseconds(),
		Solution: sol,
	})
}

func okResp(r optimizeResult) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(r)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(body)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
