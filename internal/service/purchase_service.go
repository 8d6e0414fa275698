package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/lichwu/iapush/internal/config"
	"github.com/lichwu/iapush/internal/pkg/logger"
	"github.com/lichwu/iapush/internal/util/logredact"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// PurchaseService verifies and acknowledges Play Billing in-app purchases.
// Results are passed through raw: a 410 "purchase no longer available" is the
// caller's business decision, not ours.
type PurchaseService struct {
	tokens  *TokenManager
	invoker GoogleAPIInvoker
	baseURL string
}

func NewPurchaseService(cfg *config.Config, tokens *TokenManager, invoker GoogleAPIInvoker) *PurchaseService {
	return &PurchaseService{
		tokens:  tokens,
		invoker: invoker,
		baseURL: cfg.Google.PublisherBaseURL,
	}
}

// GetOrderInfo fetches the purchases.products resource for one purchase token.
func (s *PurchaseService) GetOrderInfo(ctx context.Context, packageName, productID, purchaseToken string) (*APIResult, error) {
	accessToken, err := s.tokens.GetValidToken(ctx, false)
	if err != nil {
		return nil, err
	}

	callURL := fmt.Sprintf("%s/androidpublisher/v3/applications/%s/purchases/products/%s/tokens/%s?access_token=%s",
		s.baseURL,
		url.PathEscape(packageName),
		url.PathEscape(productID),
		url.PathEscape(purchaseToken),
		url.QueryEscape(accessToken),
	)

	result, err := s.invoker.Invoke(ctx, APICall{
		Method:  "GET",
		URL:     callURL,
		Timeout: DefaultCallTimeout,
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("purchase queried",
		zap.String("component", "purchase"),
		zap.String("package_name", packageName),
		zap.String("product_id", productID),
		zap.Int("status", result.StatusCode),
		zap.Int64("purchase_state", gjson.GetBytes(result.Body, "purchaseState").Int()),
		zap.Int64("acknowledgement_state", gjson.GetBytes(result.Body, "acknowledgementState").Int()),
	)
	return result, nil
}

// AcknowledgeOrder confirms a settled purchase with Play Billing. Google
// auto-refunds purchases left unacknowledged past its SLA window, so a
// failure here is alert-worthy rather than a plain error return.
func (s *PurchaseService) AcknowledgeOrder(ctx context.Context, packageName, productID, purchaseToken, developerPayload string) (*APIResult, error) {
	accessToken, err := s.tokens.GetValidToken(ctx, false)
	if err != nil {
		return nil, err
	}

	callURL := fmt.Sprintf("%s/androidpublisher/v3/applications/%s/purchases/products/%s/tokens/%s:acknowledge?access_token=%s",
		s.baseURL,
		url.PathEscape(packageName),
		url.PathEscape(productID),
		url.PathEscape(purchaseToken),
		url.QueryEscape(accessToken),
	)

	body, _ := json.Marshal(map[string]string{"developerPayload": developerPayload})
	result, err := s.invoker.Invoke(ctx, APICall{
		Method:  "POST",
		URL:     callURL,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
		Timeout: AcknowledgeCallTimeout,
	})
	if err != nil {
		logger.FromContext(ctx).Error("purchase acknowledge transport failure",
			zap.String("component", "alarm.purchase"),
			zap.String("url", logredact.RedactURL(callURL)),
			zap.String("package_name", packageName),
			zap.String("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}

	if !result.Success() {
		logger.FromContext(ctx).Warn("purchase acknowledge rejected upstream",
			zap.String("component", "alarm.purchase"),
			zap.String("url", logredact.RedactURL(callURL)),
			zap.String("package_name", packageName),
			zap.String("product_id", productID),
			zap.Int("status", result.StatusCode),
		)
	}
	return result, nil
}
