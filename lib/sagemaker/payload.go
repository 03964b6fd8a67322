package sagemaker

import "fmt"

// Payload is a pre-packaged request whose content type and accept travel
// with it. Body may reference objects in the payload bucket: a string body
// "$s3<key>" is replaced by the object bytes, and for JSON payloads any
// string value "$s3_b64<key>" is replaced by the base64 of the object.
type Payload struct {
	ContentType string
	Accept      string
	Body        any
}

const (
	S3Reference       = "$s3<"
	S3Base64Reference = "$s3_b64<"
)

// PayloadBucket returns the bucket holding payload objects for a region.
func PayloadBucket(region string) string {
	return fmt.Sprintf("jumpstart-cache-prod-%s", region)
}
