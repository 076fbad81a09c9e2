package config

import "github.com/talentosprecato/Mari/pkg/storage"

var storageEnv = &storage.Env{
	Backend:        "STORAGE_BACKEND",
	BasePath:       "STORAGE_BASE_PATH",
	MaxUploadSize:  "STORAGE_MAX_UPLOAD_SIZE",
	S3Bucket:       "STORAGE_S3_BUCKET",
	S3Region:       "STORAGE_S3_REGION",
	S3Endpoint:     "STORAGE_S3_ENDPOINT",
	S3AccessKey:    "STORAGE_S3_ACCESS_KEY",
	S3SecretKey:    "STORAGE_S3_SECRET_KEY",
	GCSBucket:      "STORAGE_GCS_BUCKET",
	GCSCredentials: "GOOGLE_APPLICATION_CREDENTIALS",
}
