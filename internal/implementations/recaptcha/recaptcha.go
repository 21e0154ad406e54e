package recaptcha

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/logging"
	"ums/internal/core/services/captcha"
)

const RECAPTCHA_VERIFICATION_URL = "https://www.google.com/recaptcha/api/siteverify"

type VerificationResult struct {
	Success  bool    `json:"success"`
	Score    float64 `json:"score"`
	Action   string  `json:"action"`
	Hostname string  `json:"hostname"`
}

func (r *VerificationResult) FromJSON(reader io.Reader) error {
	decoder := json.NewDecoder(reader)
	return decoder.Decode(r)
}

type GoogleRecaptchaValidator struct {
	log            logging.Logger
	httpClient     http.Client
	scoreThreshold float64
	secretKey      string
	url            string
}

func New(
	log logging.Logger,
	secretKey string,
	scoreThreshold float64,
	timeout time.Duration,
) *GoogleRecaptchaValidator {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &GoogleRecaptchaValidator{
		log:            log,
		scoreThreshold: scoreThreshold,
		secretKey:      secretKey,
		httpClient:     http.Client{Timeout: timeout},
		url:            RECAPTCHA_VERIFICATION_URL,
	}
}

func (v *GoogleRecaptchaValidator) ValidateCaptchaToken(ctx context.Context, token captcha.CaptchaToken) bool {
	if token.IsZero() {
		v.log.Info(ctx, "Recaptcha token is not provided, skip verification.")
		return false
	}

	requestBody := url.Values{}
	requestBody.Add("secret", v.secretKey)
	requestBody.Add("response", string(token))

	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		v.url,
		strings.NewReader(requestBody.Encode()),
	)
	if err != nil {
		logging.Error(ctx, v.log, err)
		return true
	}

	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response, err := v.httpClient.Do(request)
	if err != nil {
		logging.Error(ctx, v.log, err)
		return true
	}
	defer response.Body.Close()

	result := VerificationResult{}
	if err := result.FromJSON(response.Body); err != nil {
		logging.Error(ctx, v.log, err)
		return true
	}
	if result.Score > 0 && result.Score < v.scoreThreshold {
		v.log.Info(ctx, "Recaptcha score is below threshold.", logging.Entry("result", result))
		return false
	}
	v.log.Info(
		ctx,
		"Recaptcha token has been validated.",
		logging.Entry("result", result),
	)
	return result.Success
}
