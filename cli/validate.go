package cli

// This file contains validation of the comparison arguments. Everything here
// runs before any external process is started.

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws/arn"

	"github.com/s3bench/s3compare/model"
)

// validateBucket accepts a plain bucket name, or an S3 ARN whose region (when
// present) matches region.
func validateBucket(bucket, region string) error {
	if bucket == "" {
		return &model.ValidationError{Field: "bucket", Reason: "required"}
	}
	if !arn.IsARN(bucket) {
		return nil
	}
	parsed, err := arn.Parse(bucket)
	if err != nil {
		return &model.ValidationError{Field: "bucket", Value: bucket, Reason: err.Error()}
	}
	if parsed.Service != "s3" && parsed.Service != "s3express" && parsed.Service != "s3-object-lambda" {
		return &model.ValidationError{Field: "bucket", Value: bucket, Reason: "not an S3 ARN"}
	}
	if parsed.Region != "" && parsed.Region != region {
		return &model.ValidationError{Field: "bucket", Value: bucket, Reason: "ARN region differs from --region " + region}
	}
	return nil
}

func validateThroughput(throughput string) error {
	v, err := strconv.ParseFloat(throughput, 64)
	if err != nil || v <= 0 {
		return &model.ValidationError{Field: "throughput", Value: throughput, Reason: "must be a positive number of Gb/s"}
	}
	return nil
}

func parseVerbose(verbose string) (bool, error) {
	v, err := strconv.ParseBool(verbose)
	if err != nil {
		return false, &model.ValidationError{Field: "verbose", Value: verbose, Reason: "must be true or false"}
	}
	return v, nil
}
