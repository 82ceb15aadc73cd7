package namespacelist_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pinecone-io/ragcli/internal/app/namespacelist"
	"github.com/pinecone-io/ragcli/internal/ingestor/ingestormock"
	"github.com/pinecone-io/ragcli/internal/model"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mock   func(c *ingestormock.MockClient)
		expNS  []model.Namespace
		expErr bool
	}{
		"Namespaces should be returned sorted by name.": {
			mock: func(c *ingestormock.MockClient) {
				c.On("ListNamespaces", mock.Anything).Once().Return([]model.Namespace{
					{Name: "zebra", NumEntities: 3},
					{Name: "alpha", NumEntities: 1},
				}, nil)
			},
			expNS: []model.Namespace{
				{Name: "alpha", NumEntities: 1},
				{Name: "zebra", NumEntities: 3},
			},
		},

		"An empty backend should return an empty list.": {
			mock: func(c *ingestormock.MockClient) {
				c.On("ListNamespaces", mock.Anything).Once().Return([]model.Namespace{}, nil)
			},
			expNS: []model.Namespace{},
		},

		"A backend error should surface.": {
			mock: func(c *ingestormock.MockClient) {
				c.On("ListNamespaces", mock.Anything).Once().Return(nil, fmt.Errorf("boom"))
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

			svc, err := namespacelist.NewService(namespacelist.ServiceConfig{Client: client})
			require.NoError(err)

			namespaces, err := svc.Run(context.TODO())

			if test.expErr {
				require.Error(err)
			} else {
				require.NoError(err)
				assert.Equal(test.expNS, namespaces)
			}

			client.AssertExpectations(t)
		})
	}
}
