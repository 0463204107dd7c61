package capture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type StaticSourceTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *StaticSourceTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func TestStaticSourceTestSuite(t *testing.T) {
	suite.Run(t, new(StaticSourceTestSuite))
}

func (s *StaticSourceTestSuite) TestServesFrameOnce() {
	source, err := NewStaticSource(Frame("jpeg-bytes"))
	s.Require().NoError(err)

	frame, err := source.Next(s.ctx)
	s.Require().NoError(err)
	s.Equal(Frame("jpeg-bytes"), frame)

	_, err = source.Next(s.ctx)
	s.Require().ErrorIs(err, ErrCameraUnavailable)
}

func (s *StaticSourceTestSuite) TestRejectsEmptyFrame() {
	_, err := NewStaticSource(nil)
	s.Error(err)
}
