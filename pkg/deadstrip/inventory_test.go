package deadstrip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectFileInventory(t *testing.T) {
	obj := NewObjectFile("main.o")
	assert.Equal(t, 0, obj.Len())

	obj.add(".text$main")
	obj.add(".text$dead")

	assert.Equal(t, 2, obj.Len())
	assert.Equal(t, []string{".text$main", ".text$dead"}, obj.Sections())

	obj.setAt(0, "main")
	assert.Equal(t, []string{"main", ".text$dead"}, obj.Sections())
}
