package renderer

// GLSL 330 sources. Kept in Go so the binary carries no asset directory.

// litInstancedVS transforms each vertex by a per-instance matrix.
const litInstancedVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in mat4 instanceTransform;

uniform mat4 mvp;

out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;

void main() {
    vec4 world = instanceTransform * vec4(vertexPosition, 1.0);
    fragPosition = world.xyz;
    fragTexCoord = vertexTexCoord;
    fragNormal = normalize(mat3(instanceTransform) * vertexNormal);
    gl_Position = mvp * world;
}
`

// litVS is the single-draw variant used for gift parts.
const litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;

uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;

out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;

void main() {
    fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
    fragTexCoord = vertexTexCoord;
    fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// litFS is a key light plus a warm fill and ambient, with Blinn-Phong specular
// and an additive emissive term.
const litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;

uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 keyDir;
uniform vec3 keyColor;
uniform vec3 fillDir;
uniform vec3 fillColor;
uniform vec3 ambient;
uniform vec4 emissive;
uniform float shininess;
uniform float specular;

out vec4 finalColor;

void main() {
    vec4 albedo = texture(texture0, fragTexCoord) * colDiffuse;
    vec3 n = normalize(fragNormal);
    vec3 v = normalize(viewPos - fragPosition);

    vec3 lk = normalize(-keyDir);
    vec3 lf = normalize(-fillDir);
    float dk = max(dot(n, lk), 0.0);
    float df = max(dot(n, lf), 0.0);
    float sk = pow(max(dot(n, normalize(lk + v)), 0.0), shininess);

    vec3 rgb = albedo.rgb * (ambient + keyColor * dk + fillColor * df);
    rgb += keyColor * sk * specular;
    rgb += emissive.rgb * emissive.a;
    finalColor = vec4(rgb, albedo.a);
}
`

// snowVS places a camera-facing quad per flake. The fall, drift, wrap and cone
// push match systems.FlakePosition exactly.
const snowVS = `#version 330
in vec3 vertexPosition;   // initial position
in vec2 vertexTexCoord;   // quad corner in [-0.5, 0.5]
in vec2 vertexTexCoord2;  // x: scale, y: random
in vec3 vertexNormal;     // velocity, y is the fall rate

uniform mat4 matView;
uniform mat4 matProjection;

uniform float uTime;
uniform float uSpeed;
uniform vec2 uWind;
uniform float uBound;
uniform float uWrap;
uniform float uTreeHeight;
uniform float uTreeRadius;
uniform float uBuffer;
uniform float uPixelScale;

out vec2 vCorner;
out float vAlpha;
out float vRandom;

float wrapf(float x, float m) {
    return x - m * floor(x / m);
}

void main() {
    vec3 pos = vertexPosition;
    float fall = uTime * uSpeed * vertexNormal.y;
    pos.y = wrapf(pos.y - fall + uBound / 2.0, uBound) - uBound / 2.0;

    float turb = sin(uTime * 0.5 + pos.x * 0.1) * sin(uTime * 0.3 + pos.z * 0.1);
    pos.x += (uWind.x + turb) * fall * 0.1;
    pos.z += (uWind.y + turb * 0.5) * fall * 0.1;

    pos.x = wrapf(pos.x + uWrap, 2.0 * uWrap) - uWrap;
    pos.z = wrapf(pos.z + uWrap, 2.0 * uWrap) - uWrap;

    float h = pos.y + uTreeHeight / 2.0;
    if (h > 0.0 && h < uTreeHeight) {
        float r = uTreeRadius * (1.0 - h / uTreeHeight);
        float d = length(pos.xz);
        if (d < r) {
            vec2 dir = d > 0.0 ? pos.xz / d : vec2(1.0, 0.0);
            pos.xz = dir * (r + uBuffer);
        }
    }

    vec4 mv = matView * vec4(pos, 1.0);
    float dist = length(mv.xyz);

    // size_px = scale * 400 / dist, so the world-space size is distance independent
    mv.xy += vertexTexCoord * vertexTexCoord2.x * uPixelScale;

    vCorner = vertexTexCoord;
    vAlpha = smoothstep(80.0, 40.0, dist);
    vRandom = vertexTexCoord2.y;
    gl_Position = matProjection * mv;
}
`

const snowFS = `#version 330
in vec2 vCorner;
in float vAlpha;
in float vRandom;

uniform vec3 uColor;
uniform float uTime;

out vec4 finalColor;

void main() {
    float r = length(vCorner);
    if (r > 0.5) discard;

    float angle = atan(vCorner.y, vCorner.x);
    float arm = abs(cos(angle * 3.0));
    float shape = smoothstep(0.5, 0.0, r + arm * 0.1);

    float sparkle = pow(abs(sin(uTime * 3.0 + vRandom * 100.0)), 15.0);
    vec3 rgb = uColor + vec3(sparkle * 0.5);
    finalColor = vec4(rgb, vAlpha * 0.9 * shape);
}
`
