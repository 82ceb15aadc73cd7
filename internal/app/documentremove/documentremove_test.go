package documentremove_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pinecone-io/ragcli/internal/app/documentremove"
	"github.com/pinecone-io/ragcli/internal/ingestor/ingestormock"
	"github.com/pinecone-io/ragcli/internal/model"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		req      documentremove.Request
		mock     func(c *ingestormock.MockClient)
		expErr   bool
		expErrIs error
	}{
		"Removing documents should delete them on the backend.": {
			req: documentremove.Request{NamespaceName: "docs", DocumentNames: []string{"a.pdf", "b.pdf"}},
			mock: func(c *ingestormock.MockClient) {
				c.On("DeleteDocuments", mock.Anything, "docs", []string{"a.pdf", "b.pdf"}).Once().Return(nil)
			},
		},

		"Removing without a namespace name should fail.": {
			req:      documentremove.Request{DocumentNames: []string{"a.pdf"}},
			mock:     func(c *ingestormock.MockClient) {},
			expErr:   true,
			expErrIs: model.ErrNotValid,
		},

		"Removing without any document name should fail.": {
			req:      documentremove.Request{NamespaceName: "docs"},
			mock:     func(c *ingestormock.MockClient) {},
			expErr:   true,
			expErrIs: model.ErrNotValid,
		},

		"A backend error should surface.": {
			req: documentremove.Request{NamespaceName: "docs", DocumentNames: []string{"a.pdf"}},
			mock: func(c *ingestormock.MockClient) {
				c.On("DeleteDocuments", mock.Anything, "docs", []string{"a.pdf"}).Once().Return(fmt.Errorf("boom"))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			client := &ingestormock.MockClient{}
			test.mock(client)

			svc, err := documentremove.NewService(documentremove.ServiceConfig{Client: client})
			require.NoError(err)

			err = svc.Run(context.TODO(), test.req)

			if test.expErr {
				require.Error(err)
				if test.expErrIs != nil {
					assert.ErrorIs(err, test.expErrIs)
				}
			} else {
				require.NoError(err)
			}

			client.AssertExpectations(t)
		})
	}
}
