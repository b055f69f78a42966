package summaryarchive

import (
	"context"
	"fmt"
	"mdtcare-service/internal/app/contracts"
	"mdtcare-service/internal/pkg/constvars"
	"mdtcare-service/internal/pkg/exceptions"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioSummaryArchiver struct {
	MinioClient *minio.Client
	Log         *zap.Logger
	bucketName  string
}

var (
	archiverInstance contracts.SummaryArchiver
	onceArchiver     sync.Once
)

func NewMinioSummaryArchiver(minioClient *minio.Client, logger *zap.Logger, bucketName string) contracts.SummaryArchiver {
	onceArchiver.Do(func() {
		archiverInstance = &minioSummaryArchiver{
			MinioClient: minioClient,
			Log:         logger,
			bucketName:  bucketName,
		}
	})
	return archiverInstance
}

// ArchiveSummary writes the summary as a plain-text object keyed by meeting ID
// and timestamp, and returns the object name for downstream exporters.
func (m *minioSummaryArchiver) ArchiveSummary(ctx context.Context, meetingID string, summary string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	objectName := fmt.Sprintf("%s/summary-%s.txt", meetingID, time.Now().UTC().Format("20060102T150405Z"))
	reader := strings.NewReader(summary)

	_, err := m.MinioClient.PutObject(ctx, m.bucketName, objectName, reader, int64(len(summary)), minio.PutObjectOptions{
		ContentType: constvars.MIMETextPlain,
	})
	if err != nil {
		m.Log.Error("minioSummaryArchiver.ArchiveSummary error uploading object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMeetingIDKey, meetingID),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, m.bucketName)
	}

	m.Log.Info("minioSummaryArchiver.ArchiveSummary stored summary",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMeetingIDKey, meetingID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return objectName, nil
}
