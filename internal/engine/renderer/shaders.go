package renderer

// Faces are flat shaded from screen-space derivatives, so no normals are uploaded.
const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uMVP;
uniform mat4 uView;

out vec3 vViewPos;

void main() {
	vViewPos = (uView * vec4(aPos, 1.0)).xyz;
	gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const meshFragmentShader = `
#version 410 core

in vec3 vViewPos;

uniform vec3 uColor;

out vec4 FragColor;

void main() {
	vec3 n = normalize(cross(dFdx(vViewPos), dFdy(vViewPos)));
	float light = 0.35 + 0.65 * abs(n.z);
	FragColor = vec4(uColor * light, 1.0);
}
`
