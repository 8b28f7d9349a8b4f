package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSNSAPI struct {
	mock.Mock
}

func (m *mockSNSAPI) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*sns.PublishOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSNSPublish_SetsEventTypeAttribute(t *testing.T) {
	api := new(mockSNSAPI)
	client := &SNSClient{client: api}

	api.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		attr, ok := in.MessageAttributes["event_type"]
		return ok && *attr.StringValue == "cart.item_added" && *in.Message == `{"a":1}` && *in.TopicArn == "arn:topic"
	})).Return(&sns.PublishOutput{}, nil)

	require.NoError(t, client.Publish(context.Background(), "arn:topic", "cart.item_added", []byte(`{"a":1}`)))
	api.AssertExpectations(t)
}

func TestSNSPublish_Errors(t *testing.T) {
	api := new(mockSNSAPI)
	client := &SNSClient{client: api}

	assert.Error(t, client.Publish(context.Background(), "", "x", nil))

	api.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))
	err := client.Publish(context.Background(), "arn:topic", "x", []byte("{}"))
	assert.ErrorContains(t, err, "throttled")
}
