package aws_handler

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

// AWSHandler groups the AWS service clients the tracker uses. Only Secrets
// Manager is wired today, for pulling the JWT signing secret at startup.
type AWSHandler struct {
	SecretManager *SecretManager
}

func NewAWSHandler(region string) (*AWSHandler, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region)},
	)
	if err != nil {
		return nil, err
	}

	svc := secretsmanager.New(sess)
	secretManager := NewSecretManager(svc)

	return &AWSHandler{
		SecretManager: secretManager,
	}, nil
}
