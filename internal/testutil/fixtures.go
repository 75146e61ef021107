// Package testutil holds fixtures shared by the package tests.
package testutil

// AUv3TestHostProject is the project file of a fresh Xcode 15 multiplatform
// SwiftUI app, written by Xcode, with one native target.
const AUv3TestHostProject = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 56;
	objects = {

/* Begin PBXBuildFile section */
		8F10000B2B5E4D0000000001 /* AUv3TestHostApp.swift in Sources */ = {isa = PBXBuildFile; fileRef = 8F10000A2B5E4D0000000001 /* AUv3TestHostApp.swift */; };
		8F10000B2B5E4D0000000002 /* ContentView.swift in Sources */ = {isa = PBXBuildFile; fileRef = 8F10000A2B5E4D0000000002 /* ContentView.swift */; };
		8F10000B2B5E4D0000000003 /* AudioEngine.swift in Sources */ = {isa = PBXBuildFile; fileRef = 8F10000A2B5E4D0000000003 /* AudioEngine.swift */; };
		8F10000B2B5E4D0000000004 /* AudioUnitLoader.swift in Sources */ = {isa = PBXBuildFile; fileRef = 8F10000A2B5E4D0000000004 /* AudioUnitLoader.swift */; };
		8F10000B2B5E4D0000000005 /* Assets.xcassets in Resources */ = {isa = PBXBuildFile; fileRef = 8F10000A2B5E4D0000000005 /* Assets.xcassets */; };
		8F10000B2B5E4D0000000007 /* Preview Assets.xcassets in Resources */ = {isa = PBXBuildFile; fileRef = 8F10000A2B5E4D0000000007 /* Preview Assets.xcassets */; };
/* End PBXBuildFile section */

/* Begin PBXFileReference section */
		8F10000A2B5E4D0000000001 /* AUv3TestHostApp.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = AUv3TestHostApp.swift; sourceTree = "<group>"; };
		8F10000A2B5E4D0000000002 /* ContentView.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = ContentView.swift; sourceTree = "<group>"; };
		8F10000A2B5E4D0000000003 /* AudioEngine.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = AudioEngine.swift; sourceTree = "<group>"; };
		8F10000A2B5E4D0000000004 /* AudioUnitLoader.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = AudioUnitLoader.swift; sourceTree = "<group>"; };
		8F10000A2B5E4D0000000005 /* Assets.xcassets */ = {isa = PBXFileReference; lastKnownFileType = folder.assetcatalog; path = Assets.xcassets; sourceTree = "<group>"; };
		8F10000A2B5E4D0000000006 /* AUv3TestHost.app */ = {isa = PBXFileReference; explicitFileType = wrapper.application; includeInIndex = 0; path = AUv3TestHost.app; sourceTree = BUILT_PRODUCTS_DIR; };
		8F10000A2B5E4D0000000007 /* Preview Assets.xcassets */ = {isa = PBXFileReference; lastKnownFileType = folder.assetcatalog; path = "Preview Assets.xcassets"; sourceTree = "<group>"; };
		8F10000A2B5E4D0000000008 /* AUv3TestHost.entitlements */ = {isa = PBXFileReference; lastKnownFileType = text.plist.entitlements; path = AUv3TestHost.entitlements; sourceTree = "<group>"; };
/* End PBXFileReference section */

/* Begin PBXFrameworksBuildPhase section */
		8F10000D2B5E4D0000000002 /* Frameworks */ = {
			isa = PBXFrameworksBuildPhase;
			buildActionMask = 2147483647;
			files = (
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
/* End PBXFrameworksBuildPhase section */

/* Begin PBXGroup section */
		8F10000C2B5E4D0000000001 = {
			isa = PBXGroup;
			children = (
				8F10000C2B5E4D0000000003 /* AUv3TestHost */,
				8F10000C2B5E4D0000000002 /* Products */,
			);
			sourceTree = "<group>";
		};
		8F10000C2B5E4D0000000002 /* Products */ = {
			isa = PBXGroup;
			children = (
				8F10000A2B5E4D0000000006 /* AUv3TestHost.app */,
			);
			name = Products;
			sourceTree = "<group>";
		};
		8F10000C2B5E4D0000000003 /* AUv3TestHost */ = {
			isa = PBXGroup;
			children = (
				8F10000A2B5E4D0000000001 /* AUv3TestHostApp.swift */,
				8F10000A2B5E4D0000000002 /* ContentView.swift */,
				8F10000C2B5E4D0000000004 /* Audio */,
				8F10000C2B5E4D0000000005 /* Models */,
				8F10000A2B5E4D0000000005 /* Assets.xcassets */,
				8F10000A2B5E4D0000000008 /* AUv3TestHost.entitlements */,
				8F10000C2B5E4D0000000006 /* Preview Content */,
			);
			path = AUv3TestHost;
			sourceTree = "<group>";
		};
		8F10000C2B5E4D0000000004 /* Audio */ = {
			isa = PBXGroup;
			children = (
				8F10000A2B5E4D0000000003 /* AudioEngine.swift */,
			);
			path = Audio;
			sourceTree = "<group>";
		};
		8F10000C2B5E4D0000000005 /* Models */ = {
			isa = PBXGroup;
			children = (
				8F10000A2B5E4D0000000004 /* AudioUnitLoader.swift */,
			);
			path = Models;
			sourceTree = "<group>";
		};
		8F10000C2B5E4D0000000006 /* Preview Content */ = {
			isa = PBXGroup;
			children = (
				8F10000A2B5E4D0000000007 /* Preview Assets.xcassets */,
			);
			path = "Preview Content";
			sourceTree = "<group>";
		};
/* End PBXGroup section */

/* Begin PBXNativeTarget section */
		8F10000E2B5E4D0000000001 /* AUv3TestHost */ = {
			isa = PBXNativeTarget;
			buildConfigurationList = 8F1000102B5E4D0000000002 /* Build configuration list for PBXNativeTarget "AUv3TestHost" */;
			buildPhases = (
				8F10000D2B5E4D0000000001 /* Sources */,
				8F10000D2B5E4D0000000002 /* Frameworks */,
				8F10000D2B5E4D0000000003 /* Resources */,
			);
			buildRules = (
			);
			dependencies = (
			);
			name = AUv3TestHost;
			productName = AUv3TestHost;
			productReference = 8F10000A2B5E4D0000000006 /* AUv3TestHost.app */;
			productType = "com.apple.product-type.application";
		};
/* End PBXNativeTarget section */

/* Begin PBXProject section */
		8F10000F2B5E4D0000000001 /* Project object */ = {
			isa = PBXProject;
			attributes = {
				BuildIndependentTargetsInParallel = 1;
				LastSwiftUpdateCheck = 1500;
				LastUpgradeCheck = 1500;
				TargetAttributes = {
					8F10000E2B5E4D0000000001 = {
						CreatedOnToolsVersion = 15.0;
					};
				};
			};
			buildConfigurationList = 8F1000102B5E4D0000000001 /* Build configuration list for PBXProject "AUv3TestHost" */;
			compatibilityVersion = "Xcode 14.0";
			developmentRegion = en;
			hasScannedForEncodings = 0;
			knownRegions = (
				en,
				Base,
			);
			mainGroup = 8F10000C2B5E4D0000000001;
			productRefGroup = 8F10000C2B5E4D0000000002 /* Products */;
			projectDirPath = "";
			projectRoot = "";
			targets = (
				8F10000E2B5E4D0000000001 /* AUv3TestHost */,
			);
		};
/* End PBXProject section */

/* Begin PBXResourcesBuildPhase section */
		8F10000D2B5E4D0000000003 /* Resources */ = {
			isa = PBXResourcesBuildPhase;
			buildActionMask = 2147483647;
			files = (
				8F10000B2B5E4D0000000007 /* Preview Assets.xcassets in Resources */,
				8F10000B2B5E4D0000000005 /* Assets.xcassets in Resources */,
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
/* End PBXResourcesBuildPhase section */

/* Begin PBXSourcesBuildPhase section */
		8F10000D2B5E4D0000000001 /* Sources */ = {
			isa = PBXSourcesBuildPhase;
			buildActionMask = 2147483647;
			files = (
				8F10000B2B5E4D0000000003 /* AudioEngine.swift in Sources */,
				8F10000B2B5E4D0000000002 /* ContentView.swift in Sources */,
				8F10000B2B5E4D0000000004 /* AudioUnitLoader.swift in Sources */,
				8F10000B2B5E4D0000000001 /* AUv3TestHostApp.swift in Sources */,
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
/* End PBXSourcesBuildPhase section */

/* Begin XCBuildConfiguration section */
		8F1000112B5E4D0000000001 /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				ALWAYS_SEARCH_USER_PATHS = NO;
				ASSETCATALOG_COMPILER_GENERATE_SWIFT_ASSET_SYMBOL_EXTENSIONS = YES;
				CLANG_ANALYZER_NONNULL = YES;
				CLANG_ENABLE_MODULES = YES;
				CLANG_ENABLE_OBJC_ARC = YES;
				COPY_PHASE_STRIP = NO;
				DEBUG_INFORMATION_FORMAT = dwarf;
				ENABLE_STRICT_OBJC_MSGSEND = YES;
				ENABLE_TESTABILITY = YES;
				GCC_C_LANGUAGE_STANDARD = gnu17;
				GCC_DYNAMIC_NO_PIC = NO;
				GCC_OPTIMIZATION_LEVEL = 0;
				GCC_PREPROCESSOR_DEFINITIONS = (
					"DEBUG=1",
					"$(inherited)",
				);
				MTL_ENABLE_DEBUG_INFO = INCLUDE_SOURCE;
				ONLY_ACTIVE_ARCH = YES;
				SWIFT_ACTIVE_COMPILATION_CONDITIONS = "DEBUG $(inherited)";
				SWIFT_OPTIMIZATION_LEVEL = "-Onone";
			};
			name = Debug;
		};
		8F1000112B5E4D0000000002 /* Release */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				ALWAYS_SEARCH_USER_PATHS = NO;
				ASSETCATALOG_COMPILER_GENERATE_SWIFT_ASSET_SYMBOL_EXTENSIONS = YES;
				CLANG_ANALYZER_NONNULL = YES;
				CLANG_ENABLE_MODULES = YES;
				CLANG_ENABLE_OBJC_ARC = YES;
				COPY_PHASE_STRIP = NO;
				DEBUG_INFORMATION_FORMAT = "dwarf-with-dsym";
				ENABLE_NS_ASSERTIONS = NO;
				ENABLE_STRICT_OBJC_MSGSEND = YES;
				GCC_C_LANGUAGE_STANDARD = gnu17;
				MTL_ENABLE_DEBUG_INFO = NO;
				SWIFT_COMPILATION_MODE = wholemodule;
			};
			name = Release;
		};
		8F1000112B5E4D0000000003 /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				ASSETCATALOG_COMPILER_APPICON_NAME = AppIcon;
				CODE_SIGN_ENTITLEMENTS = AUv3TestHost/AUv3TestHost.entitlements;
				CODE_SIGN_STYLE = Automatic;
				CURRENT_PROJECT_VERSION = 1;
				DEVELOPMENT_ASSET_PATHS = "\"AUv3TestHost/Preview Content\"";
				ENABLE_PREVIEWS = YES;
				GENERATE_INFOPLIST_FILE = YES;
				"INFOPLIST_KEY_UIApplicationSceneManifest_Generation[sdk=iphoneos*]" = YES;
				LD_RUNPATH_SEARCH_PATHS = (
					"$(inherited)",
					"@executable_path/Frameworks",
				);
				MARKETING_VERSION = 1.0;
				PRODUCT_BUNDLE_IDENTIFIER = com.example.AUv3TestHost;
				PRODUCT_NAME = "$(TARGET_NAME)";
				SDKROOT = auto;
				SUPPORTED_PLATFORMS = "iphoneos iphonesimulator macosx";
				SWIFT_VERSION = 5.0;
				TARGETED_DEVICE_FAMILY = "1,2";
			};
			name = Debug;
		};
		8F1000112B5E4D0000000004 /* Release */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				ASSETCATALOG_COMPILER_APPICON_NAME = AppIcon;
				CODE_SIGN_ENTITLEMENTS = AUv3TestHost/AUv3TestHost.entitlements;
				CODE_SIGN_STYLE = Automatic;
				CURRENT_PROJECT_VERSION = 1;
				DEVELOPMENT_ASSET_PATHS = "\"AUv3TestHost/Preview Content\"";
				ENABLE_PREVIEWS = YES;
				GENERATE_INFOPLIST_FILE = YES;
				"INFOPLIST_KEY_UIApplicationSceneManifest_Generation[sdk=iphoneos*]" = YES;
				LD_RUNPATH_SEARCH_PATHS = (
					"$(inherited)",
					"@executable_path/Frameworks",
				);
				MARKETING_VERSION = 1.0;
				PRODUCT_BUNDLE_IDENTIFIER = com.example.AUv3TestHost;
				PRODUCT_NAME = "$(TARGET_NAME)";
				SDKROOT = auto;
				SUPPORTED_PLATFORMS = "iphoneos iphonesimulator macosx";
				SWIFT_VERSION = 5.0;
				TARGETED_DEVICE_FAMILY = "1,2";
			};
			name = Release;
		};
/* End XCBuildConfiguration section */

/* Begin XCConfigurationList section */
		8F1000102B5E4D0000000001 /* Build configuration list for PBXProject "AUv3TestHost" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				8F1000112B5E4D0000000001 /* Debug */,
				8F1000112B5E4D0000000002 /* Release */,
			);
			defaultConfigurationIsVisible = 0;
			defaultConfigurationName = Release;
		};
		8F1000102B5E4D0000000002 /* Build configuration list for PBXNativeTarget "AUv3TestHost" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				8F1000112B5E4D0000000003 /* Debug */,
				8F1000112B5E4D0000000004 /* Release */,
			);
			defaultConfigurationIsVisible = 0;
			defaultConfigurationName = Release;
		};
/* End XCConfigurationList section */
	};
	rootObject = 8F10000F2B5E4D0000000001 /* Project object */;
}
`

// Identifiers of records in AUv3TestHostProject.
const (
	HostTargetUUID  = "8F10000E2B5E4D0000000001"
	RootObjectUUID  = "8F10000F2B5E4D0000000001"
	MainGroupUUID   = "8F10000C2B5E4D0000000001"
	ProductsUUID    = "8F10000C2B5E4D0000000002"
	HostProductUUID = "8F10000A2B5E4D0000000006"
)
