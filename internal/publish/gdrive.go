package publish

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/2beens/intervals-sync/internal/telemetry/tracing"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// GoogleDrive publishes documents into a single Drive folder. Drive has
// no real paths, so only the base name of the document path is used and
// an existing file with that name is updated in place.
type GoogleDrive struct {
	service  *drive.Service
	folderID string
}

func NewGoogleDrive(ctx context.Context, credentialsJSON []byte, folderName string) (*GoogleDrive, error) {
	// https://github.com/googleapis/google-api-go-client/blob/master/drive/v3/drive-gen.go
	driveService, err := drive.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}
	return NewGoogleDriveWithService(ctx, driveService, folderName)
}

// NewGoogleDriveWithService finds or creates the sync folder on an already
// configured Drive service.
func NewGoogleDriveWithService(ctx context.Context, driveService *drive.Service, folderName string) (*GoogleDrive, error) {
	folderQuery := fmt.Sprintf("mimeType = 'application/vnd.google-apps.folder' and trashed = false and name = '%s'", folderName)
	foundFolders, err := driveService.
		Files.List().
		Q(folderQuery).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve files: %w", err)
	}

	folderID := ""
	if len(foundFolders.Files) == 1 {
		folder := foundFolders.Files[0]
		log.Debugf("sync folder found, %s: %s", folder.Name, folder.Id)
		folderID = folder.Id
	} else if len(foundFolders.Files) == 0 {
		log.Debugf("sync folder %s not found, will create it", folderName)
	} else {
		folder := foundFolders.Files[0]
		log.Warnf("found %d folders named %s, will take the first one: %s", len(foundFolders.Files), folderName, folder.Id)
		folderID = folder.Id
	}

	if folderID == "" {
		folderMeta := &drive.File{
			Name:     folderName,
			MimeType: "application/vnd.google-apps.folder",
		}
		createdFolder, err := driveService.
			Files.Create(folderMeta).
			Fields("id").
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to create sync folder: %w", err)
		}
		log.Debugf("new sync folder created: %s", createdFolder.Id)
		folderID = createdFolder.Id
	}

	return &GoogleDrive{
		service:  driveService,
		folderID: folderID,
	}, nil
}

func (g *GoogleDrive) Publish(ctx context.Context, doc any, filePath, _ string) (location string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "publisher.gdrive")
	span.SetAttributes(attribute.String("path", filePath))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	content, err := EncodeDocument(doc)
	if err != nil {
		return "", err
	}

	fileName := path.Base(filePath)
	existing, err := g.findFile(ctx, fileName)
	if err != nil {
		return "", err
	}

	var published *drive.File
	if existing == nil {
		fileMeta := &drive.File{
			Name: fileName,
			// https://developers.google.com/drive/api/v3/mime-types
			MimeType: "application/json",
			Parents:  []string{g.folderID},
		}
		published, err = g.service.
			Files.Create(fileMeta).
			Fields("id, webViewLink").
			Media(bytes.NewReader(content)).
			Context(ctx).
			Do()
		if err != nil {
			return "", fmt.Errorf("failed to create file %s: %w", fileName, err)
		}
	} else {
		published, err = g.service.
			Files.Update(existing.Id, &drive.File{}).
			Fields("id, webViewLink").
			Media(bytes.NewReader(content)).
			Context(ctx).
			Do()
		if err != nil {
			return "", fmt.Errorf("failed to update file %s: %w", fileName, err)
		}
	}

	if published.WebViewLink != "" {
		return published.WebViewLink, nil
	}
	return published.Id, nil
}

func (g *GoogleDrive) findFile(ctx context.Context, fileName string) (*drive.File, error) {
	query := fmt.Sprintf("'%s' in parents and name = '%s' and trashed = false", g.folderID, fileName)
	found, err := g.service.
		Files.List().
		Q(query).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	if len(found.Files) == 0 {
		return nil, nil
	}
	if len(found.Files) > 1 {
		log.Warnf("found %d files named %s, will update the first one: %s", len(found.Files), fileName, found.Files[0].Id)
	}
	return found.Files[0], nil
}
