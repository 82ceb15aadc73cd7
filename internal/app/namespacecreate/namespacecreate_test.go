package namespacecreate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pinecone-io/ragcli/internal/app/namespacecreate"
	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/ingestor/ingestormock"
	"github.com/pinecone-io/ragcli/internal/model"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		req      namespacecreate.Request
		mock     func(c *ingestormock.MockClient)
		expNS    *model.Namespace
		expErr   bool
		expErrIs error
	}{
		"Creating a valid namespace should create it on the backend.": {
			req: namespacecreate.Request{Config: model.NamespaceConfig{
				Name:               "docs",
				EmbeddingDimension: 2048,
			}},
			mock: func(c *ingestormock.MockClient) {
				c.On("ListNamespaces", mock.Anything).Once().Return([]model.Namespace{{Name: "other"}}, nil)
				c.On("CreateNamespace", mock.Anything, mock.Anything).Once().Return(&ingestor.OpResult{Successful: []string{"docs"}}, nil)
			},
			expNS: &model.Namespace{Name: "docs"},
		},

		"An invalid namespace name should fail before hitting the backend.": {
			req: namespacecreate.Request{Config: model.NamespaceConfig{
				Name:               "9docs",
				EmbeddingDimension: 2048,
			}},
			mock:     func(c *ingestormock.MockClient) {},
			expErr:   true,
			expErrIs: model.ErrNotValid,
		},

		"A namespace name already in use should fail without creating anything.": {
			req: namespacecreate.Request{Config: model.NamespaceConfig{
				Name:               "docs",
				EmbeddingDimension: 2048,
			}},
			mock: func(c *ingestormock.MockClient) {
				c.On("ListNamespaces", mock.Anything).Once().Return([]model.Namespace{{Name: "docs"}}, nil)
			},
			expErr:   true,
			expErrIs: model.ErrAlreadyExists,
		},

		"A backend-reported creation failure should surface as an error.": {
			req: namespacecreate.Request{Config: model.NamespaceConfig{
				Name:               "docs",
				EmbeddingDimension: 2048,
			}},
			mock: func(c *ingestormock.MockClient) {
				c.On("ListNamespaces", mock.Anything).Once().Return([]model.Namespace{}, nil)
				c.On("CreateNamespace", mock.Anything, mock.Anything).Once().Return(&ingestor.OpResult{
					Failed: []ingestor.FailedNamespace{{NamespaceName: "docs", ErrorMessage: "quota exceeded"}},
				}, nil)
			},
			expErr: true,
		},

		"The created namespace should carry the configured metadata schema.": {
			req: namespacecreate.Request{Config: model.NamespaceConfig{
				Name:               "docs",
				EmbeddingDimension: 1024,
				MetadataSchema: []model.MetadataField{
					{Name: "author", Type: model.MetadataFieldString},
				},
			}},
			mock: func(c *ingestormock.MockClient) {
				c.On("ListNamespaces", mock.Anything).Once().Return([]model.Namespace{}, nil)
				c.On("CreateNamespace", mock.Anything, mock.Anything).Once().Return(&ingestor.OpResult{Successful: []string{"docs"}}, nil)
			},
			expNS: &model.Namespace{
				Name: "docs",
				MetadataSchema: []model.MetadataField{
					{Name: "author", Type: model.MetadataFieldString},
				},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			client := &ingestormock.MockClient{}
			test.mock(client)

			svc, err := namespacecreate.NewService(namespacecreate.ServiceConfig{Client: client})
			require.NoError(err)

			ns, err := svc.Run(context.TODO(), test.req)

			if test.expErr {
				require.Error(err)
				if test.expErrIs != nil {
					assert.ErrorIs(err, test.expErrIs)
				}
			} else {
				require.NoError(err)
				assert.Equal(test.expNS, ns)
			}

			client.AssertExpectations(t)
		})
	}
}
