package hlsl

// Uniforms declared by UnityCG.cginc and friends. Redeclaring them breaks
// compilation of the reconstructed shader.
var builtinUniforms = toSet(
	"_Time", "_SinTime", "_CosTime", "unity_DeltaTime",
	"_WorldSpaceCameraPos", "_ProjectionParams", "_ScreenParams", "_ZBufferParams",
	"unity_OrthoParams", "unity_CameraProjection", "unity_CameraInvProjection",
	"unity_CameraWorldClipPlanes",
	"_WorldSpaceLightPos0", "_LightPositionRange", "_LightProjectionParams",
	"_LightColor0", "_SpecColor",
	"unity_4LightPosX0", "unity_4LightPosY0", "unity_4LightPosZ0", "unity_4LightAtten0",
	"unity_LightColor", "unity_LightPosition", "unity_LightAtten", "unity_SpotDirection",
	"unity_SHAr", "unity_SHAg", "unity_SHAb", "unity_SHBr", "unity_SHBg", "unity_SHBb", "unity_SHC",
	"unity_OcclusionMaskSelector", "unity_ProbesOcclusion",
	"unity_LightShadowBias", "_LightSplitsNear", "_LightSplitsFar",
	"unity_ShadowSplitSpheres", "unity_ShadowSplitSqRadii", "unity_ShadowFadeCenterAndType",
	"_LightShadowData", "unity_WorldToShadow",
	"unity_ObjectToWorld", "unity_WorldToObject", "unity_LODFade", "unity_WorldTransformParams",
	"unity_RenderingLayer",
	"glstate_matrix_projection", "unity_MatrixV", "unity_MatrixInvV", "unity_MatrixVP",
	"unity_StereoEyeIndex", "unity_ShadowColor",
	"unity_FogColor", "unity_FogParams",
	"unity_LightmapST", "unity_DynamicLightmapST",
	"unity_SpecCube0_BoxMax", "unity_SpecCube0_BoxMin", "unity_SpecCube0_ProbePosition",
	"unity_SpecCube0_HDR", "unity_SpecCube1_BoxMax", "unity_SpecCube1_BoxMin",
	"unity_SpecCube1_ProbePosition", "unity_SpecCube1_HDR",
	"unity_ProbeVolumeParams", "unity_ProbeVolumeWorldToObject",
	"unity_ProbeVolumeSizeInv", "unity_ProbeVolumeMin",
	"unity_ColorSpaceGrey", "unity_ColorSpaceDouble", "unity_ColorSpaceDielectricSpec",
	"unity_ColorSpaceLuminance", "unity_Lightmap_HDR", "unity_DynamicLightmap_HDR",
	"unity_SpriteRendererColor", "unity_SpriteFlip",
)

var builtinTextures = toSet(
	"unity_Lightmap", "unity_LightmapInd", "unity_ShadowMask",
	"unity_DynamicLightmap", "unity_DynamicDirectionality", "unity_DynamicNormal",
	"unity_SpecCube0", "unity_SpecCube1", "unity_ProbeVolumeSH",
	"_ShadowMapTexture", "_LightTexture0", "_LightTextureB0",
)

func toSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// IsBuiltin reports whether name is an engine-provided uniform or texture.
func IsBuiltin(name string) bool { return builtinUniforms[name] || builtinTextures[name] }
