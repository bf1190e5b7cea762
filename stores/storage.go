package stores

import (
	"os"

	"sandtable-catalog/core"
	"sandtable-catalog/stores/aws"
	"sandtable-catalog/stores/filesystem"
	"sandtable-catalog/stores/memory"
	"sandtable-catalog/stores/minio"
	"sandtable-catalog/stores/sqlite"

	"github.com/sirupsen/logrus"
)

// GetStore selects an object-store backend from the environment. The
// returned handle is passed into the services at construction; nothing
// else in the process reads storage configuration.
func GetStore() core.ObjectStore {
	storageType := os.Getenv("STORAGE_TYPE")
	var store core.ObjectStore

	storageField := logrus.Fields{
		"storageType": storageType,
	}

	switch storageType {
	case "filesystem":
		basePath := os.Getenv("LOCAL_STORAGE_PATH")
		if basePath == "" {
			basePath = "./data" // Default path
		}
		storageField["basePath"] = basePath
		store = filesystem.NewStore(basePath)
	case "sqlite":
		dataSourceName := os.Getenv("DATA_SOURCE_NAME")
		if dataSourceName == "" {
			dataSourceName = "catalog.db" // Default filename
		}
		storageField["dataSourceName"] = dataSourceName
		store = sqlite.NewStore(dataSourceName)
	case "s3":
		bucketName := os.Getenv("S3_BUCKET_NAME")
		if bucketName == "" {
			logrus.Fatal("S3_BUCKET_NAME environment variable must be set for s3 storage type")
		}
		storageField["bucketName"] = bucketName
		store = aws.NewStore(bucketName)
	case "minio":
		endpoint := os.Getenv("MINIO_ENDPOINT")
		bucketName := os.Getenv("MINIO_BUCKET_NAME")
		if endpoint == "" || bucketName == "" {
			logrus.Fatal("MINIO_ENDPOINT and MINIO_BUCKET_NAME must be set for minio storage type")
		}
		storageField["endpoint"] = endpoint
		storageField["bucketName"] = bucketName
		store = minio.NewStore(
			endpoint,
			os.Getenv("MINIO_ACCESS_KEY"),
			os.Getenv("MINIO_SECRET_KEY"),
			bucketName,
			os.Getenv("MINIO_USE_SSL") == "true",
		)
	default:
		store = memory.NewStore()
		storageField["storageType"] = "in-memory"
	}
	logrus.WithFields(storageField).Info("Use storage")
	return store
}
