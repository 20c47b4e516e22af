package reporters

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSReporterSendsInteraction(t *testing.T) {
	client := &fakeSQSClient{}
	rep := &sqsReporter{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   client,
		log:      noopLogger{},
	}

	if err := rep.Report(context.Background(), NewInteraction("qid-1", 4)); err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["query_id"]
	if !ok || aws.ToString(attr.StringValue) != "qid-1" {
		t.Fatalf("query_id attribute missing or wrong: %#v", attr)
	}
	if aws.ToString(attr.DataType) != "String" {
		t.Fatalf("DataType should be String, got %#v", attr.DataType)
	}
	if body := aws.ToString(client.input.MessageBody); !strings.Contains(body, `"click_index":4`) {
		t.Fatalf("MessageBody missing click_index: %s", body)
	}
}

func TestSQSReporterSendError(t *testing.T) {
	rep := &sqsReporter{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   &fakeSQSClient{err: errors.New("boom")},
		log:      noopLogger{},
	}

	if err := rep.Report(context.Background(), NewInteraction("qid-1", 0)); err == nil {
		t.Fatalf("expected error from Report")
	}
}

func TestNewSQSReporterWithStaticCredentials(t *testing.T) {
	rep, err := newSQSReporter(context.Background(), ReporterConfig{
		ID:   "queue",
		Type: TypeSQS,
		SQS: &SQSConfig{
			QueueURL: "http://localhost:4566/000000000000/clicks",
			Region:   "us-east-1",
			Endpoint: "http://localhost:4566",
			AWSAuth:  AWSAuth{AccessKeyID: "test", SecretAccessKey: "test"},
		},
	}, nil)
	if err != nil {
		t.Fatalf("newSQSReporter: %v", err)
	}
	if rep.Type() != TypeSQS || rep.ID() != "queue" {
		t.Fatalf("unexpected reporter identity %s/%s", rep.Type(), rep.ID())
	}
}
