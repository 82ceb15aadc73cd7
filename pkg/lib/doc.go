// Package lib provides a Go SDK for managing RAG backend namespaces,
// documents and ingestion tasks programmatically.
//
// This package allows applications to upload documents, follow their
// ingestion and manage collections without shelling out to the ragcli
// binary. It is useful for scripting, automation, and building tools on top
// of a RAG backend.
//
// # Quick Start
//
// Create a client, create a namespace and upload a document:
//
//	client, err := lib.New(ctx, lib.Config{ServerURL: "http://localhost:8081"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Create a namespace with a metadata schema.
//	err = client.CreateNamespace(ctx, lib.NamespaceConfig{
//	    Name: "docs",
//	    MetadataSchema: []lib.MetadataField{
//	        {Name: "author", Type: lib.MetadataString},
//	    },
//	})
//
//	// Upload and wait for the ingestion to finish.
//	f, _ := os.Open("report.pdf")
//	defer f.Close()
//	result, err := client.UploadAndWait(ctx, lib.UploadOpts{
//	    Namespace: "docs",
//	    Documents: []lib.UploadDocument{{Name: "report.pdf", Content: f}},
//	})
//
// # Task Tracking
//
// Uploads are asynchronous: the backend assigns a task id and the client
// polls it in the background. Tasks are persisted locally, so a new process
// can resume unfinished ones:
//
//	taskID, err := client.Upload(ctx, opts)     // returns immediately
//	tasks, err := client.Notifications(ctx)     // unread first, newest first
//	err = client.Watch(ctx)                     // resume pending tasks and wait
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrAlreadyExists]: Resource with the same name already exists.
//   - [ErrNotValid]: Invalid input (e.g. metadata outside the namespace schema).
//
// # Storage
//
// The client keeps its task and settings state in a local SQLite database,
// ~/.ragcli/ragcli.db by default. Multiple client instances sharing the same
// database see the same tracked tasks.
package lib
