package repository

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/lichwu/iapush/internal/pkg/httpclient"
	"github.com/lichwu/iapush/internal/service"
	"github.com/lichwu/iapush/internal/util/iaperror"
)

type googleAPIInvoker struct{}

// NewGoogleAPIInvoker executes authenticated Google API calls over the shared
// client pool. One pooled client exists per timeout budget, so the 5s and 10s
// call classes do not fight over a single transport deadline.
func NewGoogleAPIInvoker() service.GoogleAPIInvoker {
	return &googleAPIInvoker{}
}

func (i *googleAPIInvoker) Invoke(ctx context.Context, call service.APICall) (*service.APIResult, error) {
	timeout := call.Timeout
	if timeout <= 0 {
		timeout = service.DefaultCallTimeout
	}
	client, err := httpclient.GetClient(httpclient.Options{Timeout: timeout})
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if len(call.Body) > 0 {
		body = bytes.NewReader(call.Body)
	}
	req, err := http.NewRequestWithContext(ctx, call.Method, call.URL, body)
	if err != nil {
		return nil, err
	}
	for k, v := range call.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &iaperror.TransportError{URL: call.URL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &iaperror.TransportError{URL: call.URL, Err: err}
	}
	return &service.APIResult{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}
