package engine

// Shader sources for presenting the traced frame

// Vertex shader for the full-screen quad
const frameVertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

out vec2 TexCoord;

void main() {
    gl_Position = vec4(aPos, 1.0);
    TexCoord = aTexCoord;
}
`

// Fragment shader copying the frame texture to the screen unchanged.
// Colors are already final, so there is no filtering or post-processing.
const frameFragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D frameTexture;

void main() {
    FragColor = texture(frameTexture, TexCoord);
}
`
