package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"studysize/domain/core"
)

func TestFromDomain(t *testing.T) {
	err := fmt.Errorf("combination 2: %w", core.NewInvalidParameter("precision", 1, "ratio of upper to lower bound must be > 1"))
	appErr := FromDomain(err)
	assert.Equal(t, CodeInvalidParameter, appErr.Code)
	assert.Equal(t, "precision", appErr.Param)
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(appErr.Code))

	undefined := FromDomain(core.NewDomainUndefined("variance", 0, "is not positive"))
	assert.Equal(t, CodeDomainUndefined, undefined.Code)

	canceled := FromDomain(fmt.Errorf("sweep: %w", context.Canceled))
	assert.Equal(t, CodeCanceled, canceled.Code)

	other := FromDomain(stderrors.New("boom"))
	assert.Equal(t, CodeInternalError, other.Code)
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(other.Code))

	assert.Nil(t, FromDomain(nil))

	existing := InvalidInput("bad json")
	assert.Same(t, existing, FromDomain(existing))
}

func TestWrapKeepsCode(t *testing.T) {
	base := ConfigInvalid("PORT is required")
	wrapped := Wrap(base, "failed to load configuration")
	assert.Equal(t, CodeConfigInvalid, GetCode(wrapped))
	assert.True(t, IsAppError(wrapped))
	assert.Nil(t, Wrap(nil, "x"))

	plain := Wrapf(stderrors.New("disk full"), "export %s", "grid.xlsx")
	assert.Equal(t, CodeInternalError, GetCode(plain))
	assert.Equal(t, "export grid.xlsx: disk full", plain.Error())

	assert.Equal(t, CodeNotFound, GetCode(WithCode(CodeNotFound, stderrors.New("x"))))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("x")))
}
