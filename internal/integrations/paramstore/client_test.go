package paramstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

// fakeAPI answers from a fixed map and records every batch it receives.
type fakeAPI struct {
	vals    map[string]string
	err     error
	batches [][]string
	decrypt []bool
}

func (f *fakeAPI) GetParameters(_ context.Context, in *ssm.GetParametersInput, _ ...func(*ssm.Options)) (*ssm.GetParametersOutput, error) {
	f.batches = append(f.batches, append([]string(nil), in.Names...))
	f.decrypt = append(f.decrypt, in.WithDecryption != nil && *in.WithDecryption)
	if f.err != nil {
		return nil, f.err
	}
	out := &ssm.GetParametersOutput{}
	for _, n := range in.Names {
		v, ok := f.vals[n]
		if !ok {
			out.InvalidParameters = append(out.InvalidParameters, n)
			continue
		}
		out.Parameters = append(out.Parameters, types.Parameter{
			Name:  strPtr(n),
			Value: strPtr(v),
			Type:  types.ParameterTypeSecureString,
		})
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func TestGetParameters_HappyPath(t *testing.T) {
	api := &fakeAPI{vals: map[string]string{"/gm/openai-api-key": "sk-1", "/gm/twitter-consumer-key": "ck"}}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.GetParameters(context.Background(), []string{"/gm/openai-api-key", "/gm/twitter-consumer-key"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"/gm/openai-api-key": "sk-1", "/gm/twitter-consumer-key": "ck"}, got)
	require.Equal(t, []bool{true}, api.decrypt)
}

func TestGetParameters_UnknownNamesAreOmitted(t *testing.T) {
	api := &fakeAPI{vals: map[string]string{"/gm/a": "1"}}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.GetParameters(context.Background(), []string{"/gm/a", "/gm/missing"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"/gm/a": "1"}, got)
}

func TestGetParameters_Batches(t *testing.T) {
	vals := map[string]string{}
	var names []string
	for i := 0; i < 12; i++ {
		n := fmt.Sprintf("/gm/p%d", i)
		vals[n] = "v"
		names = append(names, n)
	}
	api := &fakeAPI{vals: vals}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.GetParameters(context.Background(), names)
	require.NoError(t, err)
	require.Len(t, got, 12)
	require.Len(t, api.batches, 2)
	require.Len(t, api.batches[0], 10)
	require.Len(t, api.batches[1], 2)
}

func TestGetParameters_ApiError(t *testing.T) {
	api := &fakeAPI{err: errors.New("boom")}
	client, err := New(api)
	require.NoError(t, err)
	_, err = client.GetParameters(context.Background(), []string{"/gm/a"})
	require.Error(t, err)
	require.ErrorContains(t, err, "boom")
}

func TestGetParameters_ClientNotInitialized(t *testing.T) {
	_, err := (&Client{}).GetParameters(context.Background(), []string{"/gm/a"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not initialized")
}

func TestGetParameters_BlankNames(t *testing.T) {
	client, err := New(&fakeAPI{})
	require.NoError(t, err)
	_, err = client.GetParameters(context.Background(), []string{" ", ""})
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")
}
