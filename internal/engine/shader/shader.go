// Package shader provides OpenGL shader compilation and uniform buffer helpers.
package shader

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", gl.GoStr(&log[0]))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, gl.GoStr(&log[0]))
	}

	return shader, nil
}

// GetUniform returns the uniform location for the given name, or -1 if the
// uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// BindUniformBlock attaches the named std140 block of program to a binding
// point shared with a UniformBuffer.
func BindUniformBlock(program uint32, name string, binding uint32) error {
	index := gl.GetUniformBlockIndex(program, gl.Str(name+"\x00"))
	if index == gl.INVALID_INDEX {
		return fmt.Errorf("uniform block %q not found in program %d", name, program)
	}
	gl.UniformBlockBinding(program, index, binding)
	return nil
}

// UniformBuffer is a uniform buffer object bound to a fixed binding point.
type UniformBuffer struct {
	id      uint32
	binding uint32
	size    int
}

// NewUniformBuffer allocates a buffer of size bytes at binding.
func NewUniformBuffer(binding uint32, size int) *UniformBuffer {
	u := &UniformBuffer{binding: binding, size: size}
	gl.GenBuffers(1, &u.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, u.id)
	gl.BufferData(gl.UNIFORM_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, binding, u.id)
	return u
}

// Update replaces the buffer contents. data must be exactly the buffer size.
func (u *UniformBuffer) Update(data []byte) error {
	if len(data) != u.size {
		return fmt.Errorf("uniform buffer %d: got %d bytes, want %d", u.binding, len(data), u.size)
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, u.id)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), unsafe.Pointer(&data[0]))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return nil
}

// Delete frees the buffer.
func (u *UniformBuffer) Delete() {
	if u.id != 0 {
		gl.DeleteBuffers(1, &u.id)
		u.id = 0
	}
}
