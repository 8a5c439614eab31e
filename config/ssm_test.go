package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedParameters serves one page per call, chained by NextToken.
type pagedParameters struct {
	pages [][]types.Parameter
	calls int
	err   error
}

func (p *pagedParameters) GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if p.err != nil {
		return nil, p.err
	}
	page := p.pages[p.calls]
	p.calls++

	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if p.calls < len(p.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestLoadParametersOverlaysConfig(t *testing.T) {
	client := &pagedParameters{pages: [][]types.Parameter{
		{{Name: aws.String("/igreja/prod/jwt_secret"), Value: aws.String("segredo")}},
		{{Name: aws.String("/igreja/prod/db/database_url"), Value: aws.String("postgres://db")}},
	}}
	c := map[string]string{"JWT_SECRET": "local", "PORT": "8080"}

	require.NoError(t, loadParameters(context.Background(), client, "/igreja/prod", c))

	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "segredo", c["JWT_SECRET"])
	assert.Equal(t, "postgres://db", c["DATABASE_URL"])
	assert.Equal(t, "8080", c["PORT"])
}

func TestLoadParametersError(t *testing.T) {
	client := &pagedParameters{err: errors.New("access denied")}
	err := loadParameters(context.Background(), client, "/igreja/prod", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/igreja/prod")
}

func TestLoadSSMWithoutPathIsNoop(t *testing.T) {
	c := map[string]string{"PORT": "8080"}
	require.NoError(t, LoadSSM(context.Background(), c))
	assert.Equal(t, map[string]string{"PORT": "8080"}, c)
}
