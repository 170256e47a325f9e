package renderer

// Uniform block binding points.
const (
	cameraBinding = 0
	gridBinding   = 1
)

const meshVertexShader = `
#version 410 core

layout (std140) uniform Camera {
	mat4 uViewProj;
};

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

out vec3 vColor;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const meshFragmentShader = `
#version 410 core

in vec3 vColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vColor, 1.0);
}
`

// Edge quads are pushed out in clip space along their normal by half the line
// width in pixels, then faded across the width.
const edgeVertexShader = `
#version 410 core

layout (std140) uniform Camera {
	mat4 uViewProj;
};

uniform vec2 uViewport;
uniform float uLineWidth;

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aNormal;

out float vSide;

void main() {
	vec4 clip = uViewProj * vec4(aPos, 1.0);
	vec2 offset = aNormal * (uLineWidth * 0.5 + 1.0) / uViewport * 2.0;
	clip.xy += offset * clip.w;
	// Pull edges slightly towards the camera so they win against faces.
	clip.z -= 0.0005 * clip.w;
	gl_Position = clip;
	// Quad vertices alternate +normal, -normal.
	vSide = (gl_VertexID & 1) == 0 ? 1.0 : -1.0;
}
`

const edgeFragmentShader = `
#version 410 core

uniform vec3 uEdgeColor;

in float vSide;
out vec4 FragColor;

void main() {
	float alpha = 1.0 - smoothstep(0.5, 1.0, abs(vSide));
	FragColor = vec4(uEdgeColor, alpha);
}
`

// The grid is drawn from a single screen-covering triangle. Each fragment
// unprojects its near and far points (clip depth 0 and 1), intersects the
// y = 0 plane and shades the grid lines there.
const gridVertexShader = `
#version 410 core

layout (std140) uniform Grid {
	mat4 uViewProj;
	mat4 uViewProjInverse;
	float uZNear;
	float uZFar;
};

out vec3 vNear;
out vec3 vFar;

vec3 unproject(vec2 xy, float z) {
	vec4 p = uViewProjInverse * vec4(xy, z, 1.0);
	return p.xyz / p.w;
}

void main() {
	vec2 pos = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2) * 2.0 - 1.0;
	vNear = unproject(pos, 0.0);
	vFar = unproject(pos, 1.0);
	gl_Position = vec4(pos, 0.0, 1.0);
}
`

const gridFragmentShader = `
#version 410 core

layout (std140) uniform Grid {
	mat4 uViewProj;
	mat4 uViewProjInverse;
	float uZNear;
	float uZFar;
};

in vec3 vNear;
in vec3 vFar;
out vec4 FragColor;

vec4 grid(vec3 p, float scale) {
	vec2 coord = p.xz * scale;
	vec2 d = fwidth(coord);
	vec2 g = abs(fract(coord - 0.5) - 0.5) / d;
	float line = min(g.x, g.y);
	vec4 color = vec4(0.35, 0.35, 0.38, 1.0 - min(line, 1.0));
	if (abs(p.x) < d.x / scale) color.rgb = vec3(0.2, 0.3, 0.9);
	if (abs(p.z) < d.y / scale) color.rgb = vec3(0.9, 0.25, 0.25);
	return color;
}

void main() {
	float t = -vNear.y / (vFar.y - vNear.y);
	if (t <= 0.0) discard;
	vec3 p = vNear + t * (vFar - vNear);

	vec4 clip = uViewProj * vec4(p, 1.0);
	float depth = clip.z / clip.w;
	// Clip depth already runs 0..1; GL maps -1..1 to the depth buffer.
	gl_FragDepth = (depth + 1.0) * 0.5;

	float linear = uZNear * uZFar / (uZFar - depth * (uZFar - uZNear));
	float fade = clamp(1.0 - linear / (uZFar * 0.5), 0.0, 1.0);

	vec4 color = grid(p, 1.0);
	color.a *= fade;
	if (color.a < 0.01) discard;
	FragColor = color;
}
`
