package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/lichwu/iapush/internal/config"
	"github.com/lichwu/iapush/internal/pkg/logger"

	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

// PushTarget addresses exactly one delivery destination, a device token or a
// topic. The zero value is invalid; construct through DeviceTarget or
// TopicTarget so a message can never carry both (FCM rejects dual addressing).
type PushTarget struct {
	kind  string
	value string
}

const (
	targetDevice = "token"
	targetTopic  = "topic"
)

// DeviceTarget addresses a single device registration token.
func DeviceTarget(deviceToken string) PushTarget {
	return PushTarget{kind: targetDevice, value: deviceToken}
}

// TopicTarget addresses every device subscribed to the named topic.
func TopicTarget(topic string) PushTarget {
	return PushTarget{kind: targetTopic, value: topic}
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmMessage struct {
	Token        string          `json:"token,omitempty"`
	Topic        string          `json:"topic,omitempty"`
	Notification fcmNotification `json:"notification"`
}

type fcmSendRequest struct {
	Message fcmMessage `json:"message"`
}

// PushService sends FCM v1 notifications and manages topic subscriptions.
type PushService struct {
	tokens    *TokenManager
	invoker   GoogleAPIInvoker
	fcmBase   string
	iidBase   string
	projectID string
	serverKey string
}

func NewPushService(cfg *config.Config, tokens *TokenManager, invoker GoogleAPIInvoker) *PushService {
	return &PushService{
		tokens:    tokens,
		invoker:   invoker,
		fcmBase:   cfg.Google.FCMBaseURL,
		iidBase:   cfg.Google.IIDBaseURL,
		projectID: cfg.Google.FirebaseProjectID,
		serverKey: cfg.Google.FCMServerKey,
	}
}

// SendToDevice delivers a notification to one device token.
func (s *PushService) SendToDevice(ctx context.Context, deviceToken, title, body string, data map[string]string) (*APIResult, error) {
	return s.send(ctx, DeviceTarget(deviceToken), title, body, data)
}

// SendToTopic delivers a notification to every subscriber of a topic.
func (s *PushService) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (*APIResult, error) {
	return s.send(ctx, TopicTarget(topic), title, body, data)
}

func (s *PushService) send(ctx context.Context, target PushTarget, title, body string, data map[string]string) (*APIResult, error) {
	if target.value == "" {
		return nil, fmt.Errorf("push %s target is empty", target.kind)
	}

	accessToken, err := s.tokens.GetValidToken(ctx, false)
	if err != nil {
		return nil, err
	}

	msg := fcmMessage{Notification: fcmNotification{Title: title, Body: body}}
	switch target.kind {
	case targetDevice:
		msg.Token = target.value
	case targetTopic:
		msg.Topic = target.value
	default:
		return nil, fmt.Errorf("push target not constructed through DeviceTarget or TopicTarget")
	}

	payload, err := json.Marshal(fcmSendRequest{Message: msg})
	if err != nil {
		return nil, err
	}
	// FCM's client SDKs treat an absent data field and an empty data object
	// differently, so the key only exists when there is data to carry.
	if len(data) > 0 {
		payload, err = sjson.SetBytes(payload, "message.data", data)
		if err != nil {
			return nil, err
		}
	}

	callURL := fmt.Sprintf("%s/v1/projects/%s/messages:send", s.fcmBase, url.PathEscape(s.projectID))
	result, err := s.invoker.Invoke(ctx, APICall{
		Method: "POST",
		URL:    callURL,
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
			"Content-Type":  "application/json",
		},
		Body:    payload,
		Timeout: DefaultCallTimeout,
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("push dispatched",
		zap.String("component", "push"),
		zap.String("target_kind", target.kind),
		zap.Int("status", result.StatusCode),
	)
	return result, nil
}

// SubscribeToTopic binds a device token to a topic through the Instance ID
// API. This endpoint authenticates with the legacy server key, not a bearer
// token, so the TokenManager is not involved.
func (s *PushService) SubscribeToTopic(ctx context.Context, deviceToken, topic string) (*APIResult, error) {
	if deviceToken == "" {
		return nil, fmt.Errorf("device token is empty")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic is empty")
	}

	callURL := fmt.Sprintf("%s/iid/v1/%s/rel/topics/%s",
		s.iidBase,
		url.PathEscape(deviceToken),
		url.PathEscape(topic),
	)
	return s.invoker.Invoke(ctx, APICall{
		Method: "POST",
		URL:    callURL,
		Headers: map[string]string{
			"Authorization": "key=" + s.serverKey,
			"Content-Type":  "application/json",
		},
		Timeout: DefaultCallTimeout,
	})
}
