package sagemaker

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	lib "smpredict/lib/sagemaker"
)

// PayloadBucket is where object references in payloads are resolved.
func (smc Client) PayloadBucket() string {
	return lib.PayloadBucket(smc.args.Region)
}

// StagePayload uploads an object to the payload bucket and returns the
// reference a payload body can use to point at it.
func (smc Client) StagePayload(ctx context.Context, body io.Reader, key string) (string, error) {
	if _, err := smc.s3Client.Upload(ctx, body, key, smc.PayloadBucket()); err != nil {
		return "", fmt.Errorf("failed to stage payload %s: %w", key, err)
	}
	return lib.S3Reference + key + ">", nil
}

func (smc Client) UnstagePayload(ctx context.Context, key string) error {
	return smc.s3Client.Delete(ctx, key, smc.PayloadBucket())
}

func (smc Client) SerializePayload(ctx context.Context, payload *lib.Payload) ([]byte, error) {
	switch body := payload.Body.(type) {
	case []byte:
		return body, nil
	case string:
		if key, ok := reference(body, lib.S3Reference); ok {
			return smc.s3Client.Download(ctx, key, smc.PayloadBucket())
		}
		return []byte(body), nil
	}
	if !strings.HasPrefix(payload.ContentType, "application/json") {
		return nil, fmt.Errorf("cannot serialize payload body of type %T with content type %q", payload.Body, payload.ContentType)
	}
	body, err := decodedJSON(payload.Body)
	if err != nil {
		return nil, err
	}
	resolved, err := smc.resolveReferences(ctx, body)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return raw, nil
}

// decodedJSON returns body as the generic tree encoding/json decodes into, so
// references inside typed maps, slices and structs are reachable.
func decodedJSON(body any) (any, error) {
	switch body.(type) {
	case map[string]any, []any:
		return body, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return decoded, nil
}

// resolveReferences walks a decoded JSON body and inlines base64 object
// references.
func (smc Client) resolveReferences(ctx context.Context, v any) (any, error) {
	switch t := v.(type) {
	case string:
		key, ok := reference(t, lib.S3Base64Reference)
		if !ok {
			return t, nil
		}
		raw, err := smc.s3Client.Download(ctx, key, smc.PayloadBucket())
		if err != nil {
			return nil, fmt.Errorf("failed to fetch payload object %s: %w", key, err)
		}
		return base64.StdEncoding.EncodeToString(raw), nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			r, err := smc.resolveReferences(ctx, e)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			r, err := smc.resolveReferences(ctx, e)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	default:
		return v, nil
	}
}

func reference(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, ">") {
		return "", false
	}
	return s[len(prefix) : len(s)-1], true
}
